package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/turnover-manager/backend/internal/storage/models"
)

// PropertyRepository provides data access for properties.
type PropertyRepository struct {
	BaseRepository
}

// NewPropertyRepository creates a new property repository.
func NewPropertyRepository(db *DB) *PropertyRepository {
	return &PropertyRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

const propertyColumns = `id, address, calendar_url, latitude, longitude,
       owner_id, owner_display_name, last_synced_at, created_at, updated_at`

// Create inserts a new property.
func (r *PropertyRepository) Create(ctx context.Context, property *models.Property) error {
	property.ID = GenerateID()
	property.CreatedAt = r.Now()
	property.UpdatedAt = r.Now()

	_, err := r.DB().ExecContext(ctx, `
		INSERT INTO properties (
			id, address, calendar_url, latitude, longitude,
			owner_id, owner_display_name, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		property.ID, property.Address, property.CalendarURL,
		property.Latitude, property.Longitude,
		property.OwnerID, property.OwnerDisplayName,
		property.CreatedAt, property.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("inserting property: %w", err)
	}

	return nil
}

// GetByID retrieves a property by its ID. A missing property returns nil, nil.
func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	property := &models.Property{}

	err := r.DB().QueryRowContext(ctx, `
		SELECT `+propertyColumns+`
		FROM properties WHERE id = ?
	`, id).Scan(
		&property.ID, &property.Address, &property.CalendarURL,
		&property.Latitude, &property.Longitude,
		&property.OwnerID, &property.OwnerDisplayName,
		&property.LastSyncedAt, &property.CreatedAt, &property.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying property: %w", err)
	}

	return property, nil
}

// List retrieves all properties.
func (r *PropertyRepository) List(ctx context.Context) ([]models.Property, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT `+propertyColumns+`
		FROM properties
		ORDER BY address
	`)
	if err != nil {
		return nil, fmt.Errorf("querying properties: %w", err)
	}
	defer rows.Close()

	return r.scanProperties(rows)
}

// ListWithCalendar retrieves the properties that have a calendar feed linked.
func (r *PropertyRepository) ListWithCalendar(ctx context.Context) ([]models.Property, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT `+propertyColumns+`
		FROM properties
		WHERE TRIM(calendar_url) != ''
		ORDER BY address
	`)
	if err != nil {
		return nil, fmt.Errorf("querying properties with calendars: %w", err)
	}
	defer rows.Close()

	return r.scanProperties(rows)
}

// Update persists changes to a property's mutable fields.
func (r *PropertyRepository) Update(ctx context.Context, property *models.Property) error {
	property.UpdatedAt = r.Now()

	_, err := r.DB().ExecContext(ctx, `
		UPDATE properties
		SET address = ?, calendar_url = ?, latitude = ?, longitude = ?,
		    owner_display_name = ?, updated_at = ?
		WHERE id = ?
	`,
		property.Address, property.CalendarURL,
		property.Latitude, property.Longitude,
		property.OwnerDisplayName, property.UpdatedAt,
		property.ID,
	)

	if err != nil {
		return fmt.Errorf("updating property: %w", err)
	}

	return nil
}

// Delete removes a property.
func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB().ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}
	return nil
}

// SetLastSyncedAt records when a property's calendar was last synced.
func (r *PropertyRepository) SetLastSyncedAt(ctx context.Context, id string, at time.Time) error {
	_, err := r.DB().ExecContext(ctx, `
		UPDATE properties SET last_synced_at = ?, updated_at = ? WHERE id = ?
	`, at.UTC(), r.Now(), id)

	if err != nil {
		return fmt.Errorf("updating property sync time: %w", err)
	}

	return nil
}

func (r *PropertyRepository) scanProperties(rows *sql.Rows) ([]models.Property, error) {
	var properties []models.Property
	for rows.Next() {
		var property models.Property
		if err := rows.Scan(
			&property.ID, &property.Address, &property.CalendarURL,
			&property.Latitude, &property.Longitude,
			&property.OwnerID, &property.OwnerDisplayName,
			&property.LastSyncedAt, &property.CreatedAt, &property.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		properties = append(properties, property)
	}

	return properties, rows.Err()
}
