package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"campdirectory/internal/apperror"
	"campdirectory/internal/config"
	"campdirectory/internal/geocoder"
	"campdirectory/internal/logger"
	"campdirectory/internal/models"
	"campdirectory/internal/query"
	"campdirectory/internal/repository"
	"campdirectory/internal/storage"
)

// EarthRadiusMiles converts a distance in miles to radians.
const EarthRadiusMiles = 3963.0

type PhotoUpload struct {
	File     io.ReadSeeker
	Filename string
	Size     int64
}

type ListingService interface {
	List(ctx context.Context, q *query.Query) ([]models.Listing, int, error)
	Get(ctx context.Context, listingID string) (*models.Listing, error)
	Create(ctx context.Context, user *models.User, in models.ListingInput) (*models.Listing, error)
	Update(ctx context.Context, user *models.User, listingID string, in models.ListingInput) (*models.Listing, error)
	Delete(ctx context.Context, user *models.User, listingID string) error
	WithinRadius(ctx context.Context, postalCode string, miles float64) ([]models.Listing, error)
	UploadPhoto(ctx context.Context, user *models.User, listingID string, upload PhotoUpload) (string, error)
}

type listingService struct {
	listingRepo repository.ListingRepository
	courseRepo  repository.CourseRepository
	storage     storage.Storage
	geo         geocoder.Geocoder
	validate    *validator.Validate
	cfg         *config.Config
}

func NewListingService(
	listingRepo repository.ListingRepository,
	courseRepo repository.CourseRepository,
	storage storage.Storage,
	geo geocoder.Geocoder,
	validate *validator.Validate,
	cfg *config.Config,
) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		courseRepo:  courseRepo,
		storage:     storage,
		geo:         geo,
		validate:    validate,
		cfg:         cfg,
	}
}

func listingNotFound(listingID string) string {
	return "Listing not found with id of " + listingID
}

// List returns one page of listings with their courses inlined.
func (s *listingService) List(ctx context.Context, q *query.Query) ([]models.Listing, int, error) {
	listings, total, err := s.listingRepo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	if err := s.populateCourses(ctx, listings); err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (s *listingService) populateCourses(ctx context.Context, listings []models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	ids := make([]string, len(listings))
	for i := range listings {
		ids[i] = listings[i].ID
	}

	courses, err := s.courseRepo.ByListingIDs(ctx, ids)
	if err != nil {
		return err
	}

	byListing := make(map[string][]models.Course, len(listings))
	for _, c := range courses {
		byListing[c.ListingID] = append(byListing[c.ListingID], c)
	}
	for i := range listings {
		listings[i].Courses = byListing[listings[i].ID]
		if listings[i].Courses == nil {
			listings[i].Courses = []models.Course{}
		}
	}
	return nil
}

func (s *listingService) Get(ctx context.Context, listingID string) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, storeError(err, listingNotFound(listingID))
	}
	return listing, nil
}

// Create enforces one listing per account for everyone but admins.
func (s *listingService) Create(ctx context.Context, user *models.User, in models.ListingInput) (*models.Listing, error) {
	if !user.IsAdmin() {
		exists, err := s.listingRepo.ExistsForUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperror.NewConflict(fmt.Sprintf("The user with id %s already has a published listing", user.ID), nil)
		}
	}

	listing := &models.Listing{
		UserID: user.ID,
		Photo:  models.DefaultPhoto,
	}
	in.Apply(listing)
	listing.Slug = models.Slugify(listing.Name)

	if err := validateEntity(s.validate, listing); err != nil {
		return nil, err
	}

	s.locate(ctx, listing)

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, storeError(err, "")
	}

	logger.FromContext(ctx).WithField("listing", listing.ID).Info("Listing created")
	return listing, nil
}

// locate fills the geocoded location. A listing that cannot be geocoded is
// kept without coordinates and never matches a radius search.
func (s *listingService) locate(ctx context.Context, listing *models.Listing) {
	listing.Location = models.Location{}
	if s.geo == nil {
		return
	}

	loc, err := s.geo.Geocode(ctx, listing.Address)
	if err != nil {
		logger.FromContext(ctx).WithError(err).WithField("address", listing.Address).Warn("Failed to geocode listing address")
		return
	}
	listing.Location = *loc
}

func (s *listingService) Update(ctx context.Context, user *models.User, listingID string, in models.ListingInput) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, storeError(err, listingNotFound(listingID))
	}

	if err := checkOwner(user, listing.UserID, "update this listing"); err != nil {
		return nil, err
	}

	previousAddress := listing.Address
	in.Apply(listing)
	listing.Slug = models.Slugify(listing.Name)

	if err := validateEntity(s.validate, listing); err != nil {
		return nil, err
	}

	if listing.Address != previousAddress {
		s.locate(ctx, listing)
	}

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, storeError(err, listingNotFound(listingID))
	}
	return listing, nil
}

// Delete removes the listing, its courses and reviews, then its photo.
func (s *listingService) Delete(ctx context.Context, user *models.User, listingID string) error {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return storeError(err, listingNotFound(listingID))
	}

	if err := checkOwner(user, listing.UserID, "delete this listing"); err != nil {
		return err
	}

	if err := s.listingRepo.Delete(ctx, listingID); err != nil {
		return storeError(err, listingNotFound(listingID))
	}

	s.removePhoto(ctx, listing.Photo)
	return nil
}

func (s *listingService) removePhoto(ctx context.Context, photo string) {
	if photo == "" || photo == models.DefaultPhoto {
		return
	}
	if err := s.storage.Delete(ctx, photo); err != nil {
		logger.FromContext(ctx).WithError(err).WithField("photo", photo).Warn("Failed to remove listing photo")
	}
}

func (s *listingService) WithinRadius(ctx context.Context, postalCode string, miles float64) ([]models.Listing, error) {
	if miles < 0 {
		return nil, apperror.NewValidation("Distance must be a positive number")
	}
	if s.geo == nil {
		return nil, apperror.NewUpstream("Geocoding is not configured", nil)
	}

	loc, err := s.geo.Geocode(ctx, postalCode)
	if err != nil {
		if errors.Is(err, geocoder.ErrNoResults) {
			return nil, apperror.New(apperror.NotFound, "No location found for "+postalCode, err)
		}
		return nil, apperror.NewUpstream("Could not geocode "+postalCode, err)
	}

	return s.listingRepo.WithinRadius(ctx, *loc.Latitude, *loc.Longitude, miles/EarthRadiusMiles)
}

// UploadPhoto stores the image as photo_<listingID><ext> and returns that name.
func (s *listingService) UploadPhoto(ctx context.Context, user *models.User, listingID string, upload PhotoUpload) (string, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return "", storeError(err, listingNotFound(listingID))
	}

	if err := checkOwner(user, listing.UserID, "update this listing"); err != nil {
		return "", err
	}

	if upload.Size > s.cfg.MaxUploadSize {
		return "", apperror.NewValidation("Please upload an image less than " + humanize.Bytes(uint64(s.cfg.MaxUploadSize)))
	}
	if upload.File == nil {
		return "", apperror.NewValidation("Please upload a file")
	}

	mtype, err := mimetype.DetectReader(upload.File)
	if err != nil {
		return "", fmt.Errorf("failed to detect upload type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", apperror.NewValidation("Please upload an image file")
	}

	if _, err := upload.File.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if ext == "" {
		ext = mtype.Extension()
	}
	name := "photo_" + listing.ID + ext

	if err := s.storage.Upload(ctx, name, upload.File, upload.Size, mtype.String()); err != nil {
		logger.FromContext(ctx).WithError(err).WithField("listing", listing.ID).Error("Photo upload failed")
		return "", apperror.NewUpstream("Problem with file upload", err)
	}

	if err := s.listingRepo.UpdatePhoto(ctx, listing.ID, name); err != nil {
		return "", storeError(err, listingNotFound(listingID))
	}

	if listing.Photo != name {
		s.removePhoto(ctx, listing.Photo)
	}

	return name, nil
}
