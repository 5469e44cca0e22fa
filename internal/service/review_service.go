package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"campdirectory/internal/apperror"
	"campdirectory/internal/models"
	"campdirectory/internal/query"
	"campdirectory/internal/repository"
)

type ReviewService interface {
	List(ctx context.Context, q *query.Query, listingID string) ([]models.Review, int, error)
	Get(ctx context.Context, reviewID string) (*models.Review, error)
	Create(ctx context.Context, user *models.User, listingID string, in models.ReviewInput) (*models.Review, error)
	Update(ctx context.Context, user *models.User, reviewID string, in models.ReviewInput) (*models.Review, error)
	Delete(ctx context.Context, user *models.User, reviewID string) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	listingRepo repository.ListingRepository
	aggregates  *AggregateRecalculator
	validate    *validator.Validate
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	listingRepo repository.ListingRepository,
	aggregates *AggregateRecalculator,
	validate *validator.Validate,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		listingRepo: listingRepo,
		aggregates:  aggregates,
		validate:    validate,
	}
}

func reviewNotFound(reviewID string) string {
	return "Review not found with id of " + reviewID
}

func (s *reviewService) List(ctx context.Context, q *query.Query, listingID string) ([]models.Review, int, error) {
	if listingID != "" {
		id, ok := listingScope(listingID)
		if !ok {
			return []models.Review{}, 0, nil
		}
		q.Scope("listing_id", id)
	}

	reviews, total, err := s.reviewRepo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	refs := make([]*models.ListingRef, len(reviews))
	for i := range reviews {
		refs[i] = reviews[i].Listing
	}
	if err := populateListings(ctx, s.listingRepo, refs); err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (s *reviewService) Get(ctx context.Context, reviewID string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, storeError(err, reviewNotFound(reviewID))
	}

	if err := populateListings(ctx, s.listingRepo, []*models.ListingRef{review.Listing}); err != nil {
		return nil, err
	}
	return review, nil
}

// Create fails with a conflict when the account already reviewed the listing.
func (s *reviewService) Create(ctx context.Context, user *models.User, listingID string, in models.ReviewInput) (*models.Review, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, storeError(err, listingNotFound(listingID))
	}

	review := &models.Review{
		ListingID: listing.ID,
		UserID:    user.ID,
	}
	in.Apply(review)

	if err := validateEntity(s.validate, review); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflict(fmt.Sprintf("User %s has already reviewed listing %s", user.ID, listing.ID), err)
		}
		return nil, err
	}

	s.aggregates.RecalculateAverageRating(ctx, review.ListingID)
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, user *models.User, reviewID string, in models.ReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, storeError(err, reviewNotFound(reviewID))
	}

	if err := checkOwner(user, review.UserID, "update this review"); err != nil {
		return nil, err
	}

	in.Apply(review)
	if err := validateEntity(s.validate, review); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, storeError(err, reviewNotFound(reviewID))
	}

	if in.Rating != nil {
		s.aggregates.RecalculateAverageRating(ctx, review.ListingID)
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, user *models.User, reviewID string) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return storeError(err, reviewNotFound(reviewID))
	}

	if err := checkOwner(user, review.UserID, "delete this review"); err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return storeError(err, reviewNotFound(reviewID))
	}

	s.aggregates.RecalculateAverageRating(ctx, review.ListingID)
	return nil
}
