package service

import (
	"campdirectory/internal/config"
	"campdirectory/internal/geocoder"
	"campdirectory/internal/mailer"
	"campdirectory/internal/models"
	"campdirectory/internal/repository"
	"campdirectory/internal/storage"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Listing ListingService
	Course  CourseService
	Review  ReviewService
}

func NewService(
	rep *repository.Repository,
	cfg *config.Config,
	storage storage.Storage,
	mail mailer.Mailer,
	geo geocoder.Geocoder,
) *Service {
	validate := models.NewValidator()
	aggregates := NewAggregateRecalculator(rep.Listing, rep.Course, rep.Review)

	return &Service{
		Auth:    NewAuthService(rep.User, mail, validate, cfg),
		User:    NewUserService(rep.User, rep.Course, rep.Review, aggregates, validate),
		Listing: NewListingService(rep.Listing, rep.Course, storage, geo, validate, cfg),
		Course:  NewCourseService(rep.Course, rep.Listing, aggregates, validate),
		Review:  NewReviewService(rep.Review, rep.Listing, aggregates, validate),
	}
}
