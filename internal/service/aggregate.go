package service

import (
	"context"
	"math"

	"campdirectory/internal/logger"
	"campdirectory/internal/repository"
)

// AggregateRecalculator keeps the derived averages on a listing in step with
// its courses and reviews. Failures are logged, never returned.
type AggregateRecalculator struct {
	listings repository.ListingRepository
	courses  repository.CourseRepository
	reviews  repository.ReviewRepository
}

func NewAggregateRecalculator(
	listings repository.ListingRepository,
	courses repository.CourseRepository,
	reviews repository.ReviewRepository,
) *AggregateRecalculator {
	return &AggregateRecalculator{listings: listings, courses: courses, reviews: reviews}
}

// RecalculateAverageCost stores the mean tuition rounded up to a multiple of 10,
// or NULL when the listing has no courses.
func (a *AggregateRecalculator) RecalculateAverageCost(ctx context.Context, listingID string) {
	log := logger.FromContext(ctx).WithField("listing", listingID)

	avg, err := a.courses.AverageTuition(ctx, listingID)
	if err != nil {
		log.WithError(err).Error("Failed to compute average cost")
		return
	}

	var cost *float64
	if avg != nil {
		rounded := math.Ceil(*avg/10) * 10
		cost = &rounded
	}

	if err := a.listings.UpdateAverageCost(ctx, listingID, cost); err != nil {
		log.WithError(err).Error("Failed to store average cost")
		return
	}
	log.WithField("averageCost", cost).Debug("Average cost recalculated")
}

// RecalculateAverageRating stores the unrounded mean rating, or NULL without reviews.
func (a *AggregateRecalculator) RecalculateAverageRating(ctx context.Context, listingID string) {
	log := logger.FromContext(ctx).WithField("listing", listingID)

	avg, err := a.reviews.AverageRating(ctx, listingID)
	if err != nil {
		log.WithError(err).Error("Failed to compute average rating")
		return
	}

	if err := a.listings.UpdateAverageRating(ctx, listingID, avg); err != nil {
		log.WithError(err).Error("Failed to store average rating")
		return
	}
	log.WithField("averageRating", avg).Debug("Average rating recalculated")
}
