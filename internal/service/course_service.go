package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"campdirectory/internal/models"
	"campdirectory/internal/query"
	"campdirectory/internal/repository"
)

type CourseService interface {
	// List returns courses of one listing, or of all listings when listingID is empty.
	List(ctx context.Context, q *query.Query, listingID string) ([]models.Course, int, error)
	Get(ctx context.Context, courseID string) (*models.Course, error)
	Create(ctx context.Context, user *models.User, listingID string, in models.CourseInput) (*models.Course, error)
	Update(ctx context.Context, user *models.User, courseID string, in models.CourseInput) (*models.Course, error)
	Delete(ctx context.Context, user *models.User, courseID string) error
}

type courseService struct {
	courseRepo  repository.CourseRepository
	listingRepo repository.ListingRepository
	aggregates  *AggregateRecalculator
	validate    *validator.Validate
}

func NewCourseService(
	courseRepo repository.CourseRepository,
	listingRepo repository.ListingRepository,
	aggregates *AggregateRecalculator,
	validate *validator.Validate,
) CourseService {
	return &courseService{
		courseRepo:  courseRepo,
		listingRepo: listingRepo,
		aggregates:  aggregates,
		validate:    validate,
	}
}

func courseNotFound(courseID string) string {
	return "Course not found with id of " + courseID
}

func (s *courseService) List(ctx context.Context, q *query.Query, listingID string) ([]models.Course, int, error) {
	if listingID != "" {
		id, ok := listingScope(listingID)
		if !ok {
			return []models.Course{}, 0, nil
		}
		q.Scope("listing_id", id)
	}

	courses, total, err := s.courseRepo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	refs := make([]*models.ListingRef, len(courses))
	for i := range courses {
		refs[i] = courses[i].Listing
	}
	if err := populateListings(ctx, s.listingRepo, refs); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (s *courseService) Get(ctx context.Context, courseID string) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, storeError(err, courseNotFound(courseID))
	}

	if err := populateListings(ctx, s.listingRepo, []*models.ListingRef{course.Listing}); err != nil {
		return nil, err
	}
	return course, nil
}

// Create is allowed to the owner of the listing and to admins.
func (s *courseService) Create(ctx context.Context, user *models.User, listingID string, in models.CourseInput) (*models.Course, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, storeError(err, listingNotFound(listingID))
	}

	if err := checkOwner(user, listing.UserID, "add a course to listing "+listing.ID); err != nil {
		return nil, err
	}

	course := &models.Course{
		ListingID: listing.ID,
		UserID:    user.ID,
	}
	in.Apply(course)

	if err := validateEntity(s.validate, course); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, storeError(err, "")
	}

	s.aggregates.RecalculateAverageCost(ctx, course.ListingID)
	return course, nil
}

func (s *courseService) Update(ctx context.Context, user *models.User, courseID string, in models.CourseInput) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, storeError(err, courseNotFound(courseID))
	}

	if err := checkOwner(user, course.UserID, "update course "+course.ID); err != nil {
		return nil, err
	}

	in.Apply(course)
	if err := validateEntity(s.validate, course); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, storeError(err, courseNotFound(courseID))
	}

	if in.Tuition != nil {
		s.aggregates.RecalculateAverageCost(ctx, course.ListingID)
	}
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, user *models.User, courseID string) error {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return storeError(err, courseNotFound(courseID))
	}

	if err := checkOwner(user, course.UserID, "delete course "+course.ID); err != nil {
		return err
	}

	if err := s.courseRepo.Delete(ctx, courseID); err != nil {
		return storeError(err, courseNotFound(courseID))
	}

	s.aggregates.RecalculateAverageCost(ctx, course.ListingID)
	return nil
}
