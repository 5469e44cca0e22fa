package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"campdirectory/internal/models"
	"campdirectory/internal/query"
)

type listingRepository struct {
	db *sqlx.DB
}

func NewListingRepository(db *sqlx.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	listing.ID = uuid.New().String()
	listing.CreatedAt = time.Now().UTC()

	stmt := `
		INSERT INTO listings (
			id, user_id, name, slug, description, website, phone, email, address,
			latitude, longitude, formatted_address, street, city, state, zipcode, country,
			careers, photo, housing, job_assistance, job_guarantee, accept_gi, created_at
		) VALUES (
			:id, :user_id, :name, :slug, :description, :website, :phone, :email, :address,
			:latitude, :longitude, :formatted_address, :street, :city, :state, :zipcode, :country,
			:careers, :photo, :housing, :job_assistance, :job_guarantee, :accept_gi, :created_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, stmt, listing)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", mapError(err))
	}

	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, listingID string) (*models.Listing, error) {
	if !validID(listingID) {
		return nil, ErrNotFound
	}

	var listing models.Listing
	err := r.db.GetContext(ctx, &listing, `SELECT * FROM listings WHERE id = $1`, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing %s: %w", listingID, mapError(err))
	}

	return &listing, nil
}

func (r *listingRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM listings WHERE user_id = $1)`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check listings of user %s: %w", userID, err)
	}
	return exists, nil
}

func (r *listingRepository) List(ctx context.Context, q *query.Query) ([]models.Listing, int, error) {
	return list[models.Listing](ctx, r.db, q)
}

// WithinRadius returns listings whose great-circle distance from (lat, lng) is at most
// radius, expressed in radians.
func (r *listingRepository) WithinRadius(ctx context.Context, lat, lng, radius float64) ([]models.Listing, error) {
	stmt := `
		SELECT * FROM listings
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		AND 2 * ASIN(SQRT(
			POWER(SIN(RADIANS(latitude - $1) / 2), 2) +
			COS(RADIANS($1)) * COS(RADIANS(latitude)) * POWER(SIN(RADIANS(longitude - $2) / 2), 2)
		)) <= $3
		ORDER BY created_at DESC
	`

	listings := make([]models.Listing, 0)
	if err := r.db.SelectContext(ctx, &listings, stmt, lat, lng, radius); err != nil {
		return nil, fmt.Errorf("failed to search listings by radius: %w", err)
	}

	return listings, nil
}

// Refs loads the id, name and description of the given listings.
func (r *listingRepository) Refs(ctx context.Context, listingIDs []string) (map[string]models.ListingRef, error) {
	refs := make(map[string]models.ListingRef, len(listingIDs))
	if len(listingIDs) == 0 {
		return refs, nil
	}

	var rows []struct {
		ID          string `db:"id"`
		Name        string `db:"name"`
		Description string `db:"description"`
	}

	stmt := `SELECT id, name, description FROM listings WHERE id = ANY($1::uuid[])`
	if err := r.db.SelectContext(ctx, &rows, stmt, pq.Array(listingIDs)); err != nil {
		return nil, fmt.Errorf("failed to load listing refs: %w", err)
	}

	for _, row := range rows {
		refs[row.ID] = models.ListingRef{ID: row.ID, Name: row.Name, Description: row.Description}
	}
	return refs, nil
}

func (r *listingRepository) Update(ctx context.Context, listing *models.Listing) error {
	stmt := `
		UPDATE listings SET
			name = :name, slug = :slug, description = :description, website = :website,
			phone = :phone, email = :email, address = :address,
			latitude = :latitude, longitude = :longitude, formatted_address = :formatted_address,
			street = :street, city = :city, state = :state, zipcode = :zipcode, country = :country,
			careers = :careers, housing = :housing, job_assistance = :job_assistance,
			job_guarantee = :job_guarantee, accept_gi = :accept_gi
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, stmt, listing)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", mapError(err))
	}

	return checkAffected(result)
}

func (r *listingRepository) UpdatePhoto(ctx context.Context, listingID, photo string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE listings SET photo = $1 WHERE id = $2`, photo, listingID)
	if err != nil {
		return fmt.Errorf("failed to update listing photo: %w", err)
	}

	return checkAffected(result)
}

func (r *listingRepository) UpdateAverageCost(ctx context.Context, listingID string, cost *float64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE listings SET average_cost = $1 WHERE id = $2`, cost, listingID)
	if err != nil {
		return fmt.Errorf("failed to update average cost: %w", err)
	}
	return nil
}

func (r *listingRepository) UpdateAverageRating(ctx context.Context, listingID string, rating *float64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE listings SET average_rating = $1 WHERE id = $2`, rating, listingID)
	if err != nil {
		return fmt.Errorf("failed to update average rating: %w", err)
	}
	return nil
}

// Delete removes the listing. Its courses and reviews go with it through ON DELETE CASCADE.
func (r *listingRepository) Delete(ctx context.Context, listingID string) error {
	if !validID(listingID) {
		return ErrNotFound
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, listingID)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	return checkAffected(result)
}
