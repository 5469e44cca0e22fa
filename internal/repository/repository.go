package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"campdirectory/internal/models"
	"campdirectory/internal/query"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicate       = errors.New("duplicate record")
	ErrInvalidPassword = errors.New("invalid password")
)

const uniqueViolation = "23505"

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByResetToken(ctx context.Context, hashedToken string) (*models.User, error)
	ListUsers(ctx context.Context, q *query.Query) ([]models.User, int, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID, password string) error
	SetResetToken(ctx context.Context, userID string, hashedToken *string, expire *time.Time) error
	DeleteUser(ctx context.Context, userID string) error
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
}

type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, listingID string) (*models.Listing, error)
	ExistsForUser(ctx context.Context, userID string) (bool, error)
	List(ctx context.Context, q *query.Query) ([]models.Listing, int, error)
	WithinRadius(ctx context.Context, lat, lng, radius float64) ([]models.Listing, error)
	Refs(ctx context.Context, listingIDs []string) (map[string]models.ListingRef, error)
	Update(ctx context.Context, listing *models.Listing) error
	UpdatePhoto(ctx context.Context, listingID, photo string) error
	UpdateAverageCost(ctx context.Context, listingID string, cost *float64) error
	UpdateAverageRating(ctx context.Context, listingID string, rating *float64) error
	Delete(ctx context.Context, listingID string) error
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, courseID string) (*models.Course, error)
	List(ctx context.Context, q *query.Query) ([]models.Course, int, error)
	ByListingIDs(ctx context.Context, listingIDs []string) ([]models.Course, error)
	AverageTuition(ctx context.Context, listingID string) (*float64, error)
	ListingIDsByAuthor(ctx context.Context, userID string) ([]string, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, courseID string) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, reviewID string) (*models.Review, error)
	List(ctx context.Context, q *query.Query) ([]models.Review, int, error)
	AverageRating(ctx context.Context, listingID string) (*float64, error)
	ListingIDsByAuthor(ctx context.Context, userID string) ([]string, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, reviewID string) error
}

type Repository struct {
	User    UserRepository
	Listing ListingRepository
	Course  CourseRepository
	Review  ReviewRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Listing: NewListingRepository(db),
		Course:  NewCourseRepository(db),
		Review:  NewReviewRepository(db),
	}
}

// mapError turns driver errors into the package sentinels.
func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
	}
	return err
}

// validID reports whether id can reference a row. Malformed ids never match.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func checkAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// list runs the count and page queries built by q.
func list[T any](ctx context.Context, db *sqlx.DB, q *query.Query) ([]T, int, error) {
	countSQL, countArgs := q.CountSQL()

	var total int
	if err := db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count rows: %w", err)
	}

	selectSQL, args := q.SelectSQL()
	items := make([]T, 0)
	if err := db.SelectContext(ctx, &items, selectSQL, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to select rows: %w", err)
	}

	return items, total, nil
}
