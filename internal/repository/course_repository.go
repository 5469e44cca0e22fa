package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"campdirectory/internal/models"
	"campdirectory/internal/query"
)

type courseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) CourseRepository {
	return &courseRepository{db: db}
}

func withCourseRefs(courses []models.Course) []models.Course {
	for i := range courses {
		courses[i].Listing = &models.ListingRef{ID: courses[i].ListingID}
	}
	return courses
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	course.ID = uuid.New().String()
	course.CreatedAt = time.Now().UTC()

	stmt := `
		INSERT INTO courses (
			id, title, description, weeks, tuition, minimum_skill,
			scholarship_available, listing_id, user_id, created_at
		) VALUES (
			:id, :title, :description, :weeks, :tuition, :minimum_skill,
			:scholarship_available, :listing_id, :user_id, :created_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, stmt, course)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", mapError(err))
	}

	course.Listing = &models.ListingRef{ID: course.ListingID}
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, courseID string) (*models.Course, error) {
	if !validID(courseID) {
		return nil, ErrNotFound
	}

	var course models.Course
	err := r.db.GetContext(ctx, &course, `SELECT * FROM courses WHERE id = $1`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course %s: %w", courseID, mapError(err))
	}

	course.Listing = &models.ListingRef{ID: course.ListingID}
	return &course, nil
}

func (r *courseRepository) List(ctx context.Context, q *query.Query) ([]models.Course, int, error) {
	courses, total, err := list[models.Course](ctx, r.db, q)
	if err != nil {
		return nil, 0, err
	}
	return withCourseRefs(courses), total, nil
}

func (r *courseRepository) ByListingIDs(ctx context.Context, listingIDs []string) ([]models.Course, error) {
	courses := make([]models.Course, 0)
	if len(listingIDs) == 0 {
		return courses, nil
	}

	stmt := `SELECT * FROM courses WHERE listing_id = ANY($1::uuid[]) ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &courses, stmt, pq.Array(listingIDs)); err != nil {
		return nil, fmt.Errorf("failed to load courses of listings: %w", err)
	}

	return withCourseRefs(courses), nil
}

// AverageTuition returns nil when the listing has no courses.
func (r *courseRepository) AverageTuition(ctx context.Context, listingID string) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.GetContext(ctx, &avg, `SELECT AVG(tuition) FROM courses WHERE listing_id = $1`, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to average tuition: %w", err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

// ListingIDsByAuthor returns the listings, not owned by userID, that hold courses userID created.
func (r *courseRepository) ListingIDsByAuthor(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	if !validID(userID) {
		return ids, nil
	}
	err := r.db.SelectContext(ctx, &ids, `
		SELECT DISTINCT c.listing_id FROM courses c
		JOIN listings l ON l.id = c.listing_id
		WHERE c.user_id = $1 AND l.user_id <> $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list course listings: %w", err)
	}
	return ids, nil
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	stmt := `
		UPDATE courses SET
			title = :title, description = :description, weeks = :weeks, tuition = :tuition,
			minimum_skill = :minimum_skill, scholarship_available = :scholarship_available
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, stmt, course)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", mapError(err))
	}

	return checkAffected(result)
}

func (r *courseRepository) Delete(ctx context.Context, courseID string) error {
	if !validID(courseID) {
		return ErrNotFound
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, courseID)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	return checkAffected(result)
}
