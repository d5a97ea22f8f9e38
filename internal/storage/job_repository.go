package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/turnover-manager/backend/internal/storage/models"
)

// JobRepository provides data access for cleaning jobs.
type JobRepository struct {
	BaseRepository
}

// NewJobRepository creates a new cleaning-job repository.
func NewJobRepository(db *DB) *JobRepository {
	return &JobRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

const jobColumns = `id, address, status, cleaning_type, estimated_duration,
       preferred_date, preferred_time, guest_name, check_in_date, check_out_date,
       nights_stayed, booking_description, reservation_url, phone_last_four,
       source, reservation_id, created_at, updated_at`

// Create inserts a new cleaning job.
func (r *JobRepository) Create(ctx context.Context, job *models.CleaningJob) error {
	job.ID = GenerateID()
	job.CreatedAt = r.Now()
	job.UpdatedAt = r.Now()

	_, err := r.DB().ExecContext(ctx, `
		INSERT INTO cleaning_jobs (
			id, address, status, cleaning_type, estimated_duration,
			preferred_date, preferred_time, guest_name, check_in_date, check_out_date,
			nights_stayed, booking_description, reservation_url, phone_last_four,
			source, reservation_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		job.ID, job.Address, string(job.Status), job.CleaningType, job.EstimatedDuration,
		job.PreferredDate, job.PreferredTime, job.GuestName, job.CheckInDate, job.CheckOutDate,
		job.NightsStayed, job.BookingDescription, job.ReservationURL, job.PhoneLastFour,
		job.Source, job.ReservationID, job.CreatedAt, job.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("inserting cleaning job: %w", err)
	}

	return nil
}

// GetByID retrieves a cleaning job by its ID. A missing job returns nil, nil.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*models.CleaningJob, error) {
	job := &models.CleaningJob{}

	err := r.DB().QueryRowContext(ctx, `
		SELECT `+jobColumns+`
		FROM cleaning_jobs WHERE id = ?
	`, id).Scan(
		&job.ID, &job.Address, &job.Status, &job.CleaningType, &job.EstimatedDuration,
		&job.PreferredDate, &job.PreferredTime, &job.GuestName, &job.CheckInDate, &job.CheckOutDate,
		&job.NightsStayed, &job.BookingDescription, &job.ReservationURL, &job.PhoneLastFour,
		&job.Source, &job.ReservationID, &job.CreatedAt, &job.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying cleaning job: %w", err)
	}

	return job, nil
}

// Find retrieves cleaning jobs matching the filter. An empty filter returns
// every job.
func (r *JobRepository) Find(ctx context.Context, filter models.JobFilter) ([]models.CleaningJob, error) {
	query := `SELECT ` + jobColumns + ` FROM cleaning_jobs`

	var conditions []string
	var args []any

	if filter.Address != "" {
		conditions = append(conditions, "address = ?")
		args = append(args, filter.Address)
	}
	if filter.PreferredDate != nil {
		conditions = append(conditions, "preferred_date = ?")
		args = append(args, *filter.PreferredDate)
	}
	if len(filter.StatusIn) > 0 {
		placeholders := make([]string, len(filter.StatusIn))
		for i, status := range filter.StatusIn {
			placeholders[i] = "?"
			args = append(args, string(status))
		}
		conditions = append(conditions, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY preferred_date"

	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cleaning jobs: %w", err)
	}
	defer rows.Close()

	return r.scanJobs(rows)
}

// DeleteByIDs removes the given cleaning jobs.
func (r *JobRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	_, err := r.DB().ExecContext(ctx,
		`DELETE FROM cleaning_jobs WHERE id IN (`+strings.Join(placeholders, ", ")+`)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("deleting cleaning jobs: %w", err)
	}

	return nil
}

// CountByStatus returns the number of jobs per status.
func (r *JobRepository) CountByStatus(ctx context.Context) (map[models.JobStatus]int, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT status, COUNT(*) FROM cleaning_jobs GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("counting cleaning jobs: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.JobStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning job count: %w", err)
		}
		counts[models.JobStatus(status)] = count
	}

	return counts, rows.Err()
}

func (r *JobRepository) scanJobs(rows *sql.Rows) ([]models.CleaningJob, error) {
	var jobs []models.CleaningJob
	for rows.Next() {
		var job models.CleaningJob
		if err := rows.Scan(
			&job.ID, &job.Address, &job.Status, &job.CleaningType, &job.EstimatedDuration,
			&job.PreferredDate, &job.PreferredTime, &job.GuestName, &job.CheckInDate, &job.CheckOutDate,
			&job.NightsStayed, &job.BookingDescription, &job.ReservationURL, &job.PhoneLastFour,
			&job.Source, &job.ReservationID, &job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning cleaning job: %w", err)
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}
