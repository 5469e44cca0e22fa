package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"campdirectory/internal/models"
	"campdirectory/internal/query"
	"campdirectory/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockAuthService) UpdateDetails(ctx context.Context, userID string, req models.UpdateDetailsRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockAuthService) UpdatePassword(ctx context.Context, userID string, req models.UpdatePasswordRequest) (string, error) {
	args := m.Called(ctx, userID, req)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest, resetURL string) error {
	return m.Called(ctx, req, resetURL).Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, resetToken string, req models.ResetPasswordRequest) (string, error) {
	args := m.Called(ctx, resetToken, req)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) GenerateToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, q *query.Query) ([]models.User, int, error) {
	args := m.Called(ctx, q)
	users, _ := args.Get(0).([]models.User)
	return users, args.Int(1), args.Error(2)
}

func (m *MockUserService) Get(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	args := m.Called(ctx, in)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, userID string, in models.UserInput) (*models.User, error) {
	args := m.Called(ctx, userID, in)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) List(ctx context.Context, q *query.Query) ([]models.Listing, int, error) {
	args := m.Called(ctx, q)
	listings, _ := args.Get(0).([]models.Listing)
	return listings, args.Int(1), args.Error(2)
}

func (m *MockListingService) Get(ctx context.Context, listingID string) (*models.Listing, error) {
	args := m.Called(ctx, listingID)
	listing, _ := args.Get(0).(*models.Listing)
	return listing, args.Error(1)
}

func (m *MockListingService) Create(ctx context.Context, user *models.User, in models.ListingInput) (*models.Listing, error) {
	args := m.Called(ctx, user, in)
	listing, _ := args.Get(0).(*models.Listing)
	return listing, args.Error(1)
}

func (m *MockListingService) Update(ctx context.Context, user *models.User, listingID string, in models.ListingInput) (*models.Listing, error) {
	args := m.Called(ctx, user, listingID, in)
	listing, _ := args.Get(0).(*models.Listing)
	return listing, args.Error(1)
}

func (m *MockListingService) Delete(ctx context.Context, user *models.User, listingID string) error {
	return m.Called(ctx, user, listingID).Error(0)
}

func (m *MockListingService) WithinRadius(ctx context.Context, postalCode string, miles float64) ([]models.Listing, error) {
	args := m.Called(ctx, postalCode, miles)
	listings, _ := args.Get(0).([]models.Listing)
	return listings, args.Error(1)
}

func (m *MockListingService) UploadPhoto(ctx context.Context, user *models.User, listingID string, upload service.PhotoUpload) (string, error) {
	args := m.Called(ctx, user, listingID, upload)
	return args.String(0), args.Error(1)
}

type MockCourseService struct {
	mock.Mock
}

func (m *MockCourseService) List(ctx context.Context, q *query.Query, listingID string) ([]models.Course, int, error) {
	args := m.Called(ctx, q, listingID)
	courses, _ := args.Get(0).([]models.Course)
	return courses, args.Int(1), args.Error(2)
}

func (m *MockCourseService) Get(ctx context.Context, courseID string) (*models.Course, error) {
	args := m.Called(ctx, courseID)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *MockCourseService) Create(ctx context.Context, user *models.User, listingID string, in models.CourseInput) (*models.Course, error) {
	args := m.Called(ctx, user, listingID, in)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *MockCourseService) Update(ctx context.Context, user *models.User, courseID string, in models.CourseInput) (*models.Course, error) {
	args := m.Called(ctx, user, courseID, in)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *MockCourseService) Delete(ctx context.Context, user *models.User, courseID string) error {
	return m.Called(ctx, user, courseID).Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) List(ctx context.Context, q *query.Query, listingID string) ([]models.Review, int, error) {
	args := m.Called(ctx, q, listingID)
	reviews, _ := args.Get(0).([]models.Review)
	return reviews, args.Int(1), args.Error(2)
}

func (m *MockReviewService) Get(ctx context.Context, reviewID string) (*models.Review, error) {
	args := m.Called(ctx, reviewID)
	review, _ := args.Get(0).(*models.Review)
	return review, args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, user *models.User, listingID string, in models.ReviewInput) (*models.Review, error) {
	args := m.Called(ctx, user, listingID, in)
	review, _ := args.Get(0).(*models.Review)
	return review, args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, user *models.User, reviewID string, in models.ReviewInput) (*models.Review, error) {
	args := m.Called(ctx, user, reviewID, in)
	review, _ := args.Get(0).(*models.Review)
	return review, args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, user *models.User, reviewID string) error {
	return m.Called(ctx, user, reviewID).Error(0)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
