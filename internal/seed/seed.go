// Package seed loads fixture data from JSON files into the database.
//
// The directory holds users.json, listings.json, courses.json and reviews.json.
// Listings name their owner by email; courses and reviews name their listing
// by its name and their author by email.
package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"campdirectory/internal/logger"
	"campdirectory/internal/models"
	"campdirectory/internal/repository"
	"campdirectory/internal/service"
)

type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type Listing struct {
	models.Listing
	Owner string `json:"user"`
}

type Course struct {
	models.Course
	ListingName string `json:"listing"`
	Author      string `json:"user"`
}

type Review struct {
	models.Review
	ListingName string `json:"listing"`
	Author      string `json:"user"`
}

type Data struct {
	Users    []User
	Listings []Listing
	Courses  []Course
	Reviews  []Review
}

// Load reads every fixture file from dir. Missing files count as empty.
func Load(dir string) (*Data, error) {
	var d Data
	files := []struct {
		name string
		dst  any
	}{
		{"users.json", &d.Users},
		{"listings.json", &d.Listings},
		{"courses.json", &d.Courses},
		{"reviews.json", &d.Reviews},
	}

	for _, f := range files {
		raw, err := os.ReadFile(filepath.Join(dir, f.name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.name, err)
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.name, err)
		}
	}
	return &d, nil
}

type Seeder struct {
	repo       *repository.Repository
	aggregates *service.AggregateRecalculator
	db         *sqlx.DB
}

func NewSeeder(repo *repository.Repository, db *sqlx.DB) *Seeder {
	return &Seeder{
		repo:       repo,
		aggregates: service.NewAggregateRecalculator(repo.Listing, repo.Course, repo.Review),
		db:         db,
	}
}

// Import inserts d in dependency order and recomputes the derived averages.
func (s *Seeder) Import(ctx context.Context, d *Data) error {
	log := logger.FromContext(ctx)

	userIDs := make(map[string]string, len(d.Users))
	for _, u := range d.Users {
		user := &models.User{Name: u.Name, Email: u.Email, Role: u.Role}
		if user.Role == "" {
			user.Role = models.RoleUser
		}
		if err := s.repo.User.CreateUser(ctx, user, u.Password); err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
		userIDs[u.Email] = user.ID
	}

	listingIDs := make(map[string]string, len(d.Listings))
	for _, l := range d.Listings {
		listing := l.Listing
		ownerID, ok := userIDs[l.Owner]
		if !ok {
			return fmt.Errorf("listing %s: unknown user %q", listing.Name, l.Owner)
		}
		listing.UserID = ownerID
		listing.Slug = models.Slugify(listing.Name)
		if listing.Photo == "" {
			listing.Photo = models.DefaultPhoto
		}
		listing.AverageCost, listing.AverageRating = nil, nil
		if err := s.repo.Listing.Create(ctx, &listing); err != nil {
			return fmt.Errorf("listing %s: %w", listing.Name, err)
		}
		listingIDs[listing.Name] = listing.ID
	}

	for _, c := range d.Courses {
		course := c.Course
		if err := resolve(&course.ListingID, &course.UserID, c.ListingName, c.Author, listingIDs, userIDs); err != nil {
			return fmt.Errorf("course %s: %w", course.Title, err)
		}
		if err := s.repo.Course.Create(ctx, &course); err != nil {
			return fmt.Errorf("course %s: %w", course.Title, err)
		}
	}

	for _, r := range d.Reviews {
		review := r.Review
		if err := resolve(&review.ListingID, &review.UserID, r.ListingName, r.Author, listingIDs, userIDs); err != nil {
			return fmt.Errorf("review %s: %w", review.Title, err)
		}
		if err := s.repo.Review.Create(ctx, &review); err != nil {
			return fmt.Errorf("review %s: %w", review.Title, err)
		}
	}

	for _, id := range listingIDs {
		s.aggregates.RecalculateAverageCost(ctx, id)
		s.aggregates.RecalculateAverageRating(ctx, id)
	}

	log.WithFields(logrus.Fields{
		"users":    len(d.Users),
		"listings": len(d.Listings),
		"courses":  len(d.Courses),
		"reviews":  len(d.Reviews),
	}).Info("Data imported")
	return nil
}

func resolve(listingID, userID *string, listingName, email string, listings, users map[string]string) error {
	var ok bool
	if *listingID, ok = listings[listingName]; !ok {
		return fmt.Errorf("unknown listing %q", listingName)
	}
	if *userID, ok = users[email]; !ok {
		return fmt.Errorf("unknown user %q", email)
	}
	return nil
}

// Destroy removes every account and everything that hangs off it.
func (s *Seeder) Destroy(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `TRUNCATE reviews, courses, listings, users CASCADE`); err != nil {
		return fmt.Errorf("failed to destroy data: %w", err)
	}
	logger.FromContext(ctx).Info("Data destroyed")
	return nil
}
