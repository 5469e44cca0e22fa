package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"campdirectory/internal/apperror"
	"campdirectory/internal/models"
	"campdirectory/internal/query"
	"campdirectory/internal/repository"
)

// UserService is the admin account management surface.
type UserService interface {
	List(ctx context.Context, q *query.Query) ([]models.User, int, error)
	Get(ctx context.Context, userID string) (*models.User, error)
	Create(ctx context.Context, in models.UserInput) (*models.User, error)
	Update(ctx context.Context, userID string, in models.UserInput) (*models.User, error)
	Delete(ctx context.Context, userID string) error
}

type userService struct {
	userRepo   repository.UserRepository
	courseRepo repository.CourseRepository
	reviewRepo repository.ReviewRepository
	aggregates *AggregateRecalculator
	validate   *validator.Validate
}

func NewUserService(
	userRepo repository.UserRepository,
	courseRepo repository.CourseRepository,
	reviewRepo repository.ReviewRepository,
	aggregates *AggregateRecalculator,
	validate *validator.Validate,
) UserService {
	return &userService{
		userRepo:   userRepo,
		courseRepo: courseRepo,
		reviewRepo: reviewRepo,
		aggregates: aggregates,
		validate:   validate,
	}
}

func userNotFound(userID string) string {
	return "User not found with id of " + userID
}

func (s *userService) List(ctx context.Context, q *query.Query) ([]models.User, int, error) {
	return s.userRepo.ListUsers(ctx, q)
}

func (s *userService) Get(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, userNotFound(userID))
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	if err := validateEntity(s.validate, in); err != nil {
		return nil, err
	}
	if in.Password == nil {
		return nil, apperror.NewValidation("Please add a password")
	}

	user := &models.User{Role: models.RoleUser}
	in.Apply(user)
	if err := validateEntity(s.validate, user); err != nil {
		return nil, err
	}

	if err := s.userRepo.CreateUser(ctx, user, *in.Password); err != nil {
		return nil, storeError(err, "")
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, userID string, in models.UserInput) (*models.User, error) {
	if err := validateEntity(s.validate, in); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, userNotFound(userID))
	}

	in.Apply(user)
	if err := validateEntity(s.validate, user); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, storeError(err, userNotFound(userID))
	}

	if in.Password != nil {
		if err := s.userRepo.UpdatePassword(ctx, user.ID, *in.Password); err != nil {
			return nil, storeError(err, userNotFound(userID))
		}
	}

	return user, nil
}

// Delete removes the account and, through foreign keys, everything it published.
// Listings of other publishers that lose courses or reviews get their averages recomputed.
func (s *userService) Delete(ctx context.Context, userID string) error {
	costListings, err := s.courseRepo.ListingIDsByAuthor(ctx, userID)
	if err != nil {
		return err
	}
	ratingListings, err := s.reviewRepo.ListingIDsByAuthor(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return storeError(err, userNotFound(userID))
	}

	for _, id := range costListings {
		s.aggregates.RecalculateAverageCost(ctx, id)
	}
	for _, id := range ratingListings {
		s.aggregates.RecalculateAverageRating(ctx, id)
	}
	return nil
}
