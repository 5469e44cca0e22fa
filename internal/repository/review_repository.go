package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"campdirectory/internal/models"
	"campdirectory/internal/query"
)

type reviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create fails with ErrDuplicate when the user already reviewed the listing.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	review.ID = uuid.New().String()
	review.CreatedAt = time.Now().UTC()

	stmt := `
		INSERT INTO reviews (id, title, text, rating, listing_id, user_id, created_at)
		VALUES (:id, :title, :text, :rating, :listing_id, :user_id, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, stmt, review)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", mapError(err))
	}

	review.Listing = &models.ListingRef{ID: review.ListingID}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, reviewID string) (*models.Review, error) {
	if !validID(reviewID) {
		return nil, ErrNotFound
	}

	var review models.Review
	err := r.db.GetContext(ctx, &review, `SELECT * FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review %s: %w", reviewID, mapError(err))
	}

	review.Listing = &models.ListingRef{ID: review.ListingID}
	return &review, nil
}

func (r *reviewRepository) List(ctx context.Context, q *query.Query) ([]models.Review, int, error) {
	reviews, total, err := list[models.Review](ctx, r.db, q)
	if err != nil {
		return nil, 0, err
	}
	for i := range reviews {
		reviews[i].Listing = &models.ListingRef{ID: reviews[i].ListingID}
	}
	return reviews, total, nil
}

// AverageRating returns nil when the listing has no reviews.
func (r *reviewRepository) AverageRating(ctx context.Context, listingID string) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.GetContext(ctx, &avg, `SELECT AVG(rating) FROM reviews WHERE listing_id = $1`, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to average rating: %w", err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

// ListingIDsByAuthor returns the listings, not owned by userID, that userID reviewed.
func (r *reviewRepository) ListingIDsByAuthor(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	if !validID(userID) {
		return ids, nil
	}
	err := r.db.SelectContext(ctx, &ids, `
		SELECT DISTINCT r.listing_id FROM reviews r
		JOIN listings l ON l.id = r.listing_id
		WHERE r.user_id = $1 AND l.user_id <> $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewed listings: %w", err)
	}
	return ids, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	stmt := `
		UPDATE reviews SET title = :title, text = :text, rating = :rating
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, stmt, review)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", mapError(err))
	}

	return checkAffected(result)
}

func (r *reviewRepository) Delete(ctx context.Context, reviewID string) error {
	if !validID(reviewID) {
		return ErrNotFound
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return checkAffected(result)
}
