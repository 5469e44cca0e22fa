package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"

	DefaultPhoto = "no-photo.jpg"
)

// Careers lists the accepted values for Listing.Careers.
var Careers = []string{
	"Web Development",
	"Mobile Development",
	"UI/UX",
	"Data Science",
	"Business",
	"Other",
}

type User struct {
	ID                  string     `json:"id" db:"id"`
	Name                string     `json:"name" db:"name" validate:"required,max=100"`
	Email               string     `json:"email" db:"email" validate:"required,email"`
	Role                string     `json:"role" db:"role" validate:"required,oneof=user publisher admin"`
	PasswordHash        string     `json:"-" db:"password_hash"`
	ResetPasswordToken  *string    `json:"-" db:"reset_password_token"`
	ResetPasswordExpire *time.Time `json:"-" db:"reset_password_expire"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Location is the geocoded form of a listing address.
type Location struct {
	Latitude         *float64 `json:"latitude" db:"latitude"`
	Longitude        *float64 `json:"longitude" db:"longitude"`
	FormattedAddress string   `json:"formattedAddress" db:"formatted_address"`
	Street           string   `json:"street" db:"street"`
	City             string   `json:"city" db:"city"`
	State            string   `json:"state" db:"state"`
	Zipcode          string   `json:"zipcode" db:"zipcode"`
	Country          string   `json:"country" db:"country"`
}

type Listing struct {
	ID          string `json:"id" db:"id"`
	UserID      string `json:"user" db:"user_id"`
	Name        string `json:"name" db:"name" validate:"required,max=50"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description" validate:"required,max=500"`
	Website     string `json:"website" db:"website" validate:"omitempty,url"`
	Phone       string `json:"phone" db:"phone" validate:"omitempty,max=20"`
	Email       string `json:"email" db:"email" validate:"omitempty,email"`
	Address     string `json:"address" db:"address" validate:"required"`

	Location `json:"location"`

	Careers       pq.StringArray `json:"careers" db:"careers" validate:"required,min=1,dive,career"`
	AverageRating *float64       `json:"averageRating" db:"average_rating" validate:"omitempty,min=1,max=10"`
	AverageCost   *float64       `json:"averageCost" db:"average_cost"`
	Photo         string         `json:"photo" db:"photo"`
	Housing       bool           `json:"housing" db:"housing"`
	JobAssistance bool           `json:"jobAssistance" db:"job_assistance"`
	JobGuarantee  bool           `json:"jobGuarantee" db:"job_guarantee"`
	AcceptGi      bool           `json:"acceptGi" db:"accept_gi"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	Courses       []Course       `json:"courses,omitempty" db:"-"`
}

// ListingRef is the parent reference carried by courses and reviews.
// Name and Description are only filled when the parent is populated.
type ListingRef struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type Course struct {
	ID                   string      `json:"id" db:"id"`
	Title                string      `json:"title" db:"title" validate:"required,max=100"`
	Description          string      `json:"description" db:"description" validate:"required"`
	Weeks                int         `json:"weeks" db:"weeks" validate:"required,min=1"`
	Tuition              *float64    `json:"tuition" db:"tuition" validate:"required,min=0"`
	MinimumSkill         string      `json:"minimumSkill" db:"minimum_skill" validate:"required,oneof=beginner intermediate advanced"`
	ScholarshipAvailable bool        `json:"scholarshipAvailable" db:"scholarship_available"`
	ListingID            string      `json:"-" db:"listing_id"`
	Listing              *ListingRef `json:"listing" db:"-"`
	UserID               string      `json:"user" db:"user_id"`
	CreatedAt            time.Time   `json:"createdAt" db:"created_at"`
}

type Review struct {
	ID        string      `json:"id" db:"id"`
	Title     string      `json:"title" db:"title" validate:"required,max=100"`
	Text      string      `json:"text" db:"text" validate:"required"`
	Rating    int         `json:"rating" db:"rating" validate:"required,min=1,max=10"`
	ListingID string      `json:"-" db:"listing_id"`
	Listing   *ListingRef `json:"listing" db:"-"`
	UserID    string      `json:"user" db:"user_id"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
}
