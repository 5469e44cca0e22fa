package models

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListing() *Listing {
	return &Listing{
		Name:        "Devworks Bootcamp",
		Description: "Full stack web development",
		Website:     "https://devworks.com",
		Email:       "enroll@devworks.com",
		Address:     "233 Bay State Rd Boston MA 02215",
		Careers:     []string{"Web Development", "UI/UX"},
		Photo:       DefaultPhoto,
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Devworks Bootcamp":          "devworks-bootcamp",
		"  ModernTech -- Bootcamp! ": "moderntech-bootcamp",
		"Codemasters 2.0":            "codemasters-2-0",
		"":                           "",
	}

	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestNewValidator_RegistersCareerTag(t *testing.T) {
	var v *validator.Validate
	require.NotPanics(t, func() { v = NewValidator() })

	assert.NoError(t, v.Var("UI/UX", "career"))
	assert.Error(t, v.Var("Cooking", "career"))
}

func TestValidator_Listing(t *testing.T) {
	v := NewValidator()

	t.Run("valid listing", func(t *testing.T) {
		assert.NoError(t, v.Struct(validListing()))
	})

	t.Run("missing name and bad career", func(t *testing.T) {
		l := validListing()
		l.Name = ""
		l.Careers = []string{"Cooking"}

		err := v.Struct(l)
		require.Error(t, err)

		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		msg := ValidationMessage(verrs)
		assert.Contains(t, msg, "Please add a name")
		assert.Contains(t, msg, `"Cooking" is not a valid career`)
	})

	t.Run("name too long", func(t *testing.T) {
		l := validListing()
		l.Name = "abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijX"

		var verrs validator.ValidationErrors
		require.True(t, errors.As(v.Struct(l), &verrs))
		assert.Equal(t, "name can not be more than 50 characters", ValidationMessage(verrs))
	})

	t.Run("empty careers", func(t *testing.T) {
		l := validListing()
		l.Careers = []string{}

		assert.Error(t, v.Struct(l))
	})
}

func TestValidator_CourseAndReview(t *testing.T) {
	v := NewValidator()
	tuition := 100.0

	course := &Course{
		Title:        "Front End Web Development",
		Description:  "HTML, CSS and JavaScript",
		Weeks:        8,
		Tuition:      &tuition,
		MinimumSkill: "beginner",
	}
	assert.NoError(t, v.Struct(course))

	course.Tuition = nil
	var verrs validator.ValidationErrors
	require.True(t, errors.As(v.Struct(course), &verrs))
	assert.Equal(t, "Please add a tuition", ValidationMessage(verrs))

	review := &Review{Title: "Great", Text: "Learned a lot", Rating: 11}
	require.True(t, errors.As(v.Struct(review), &verrs))
	assert.Equal(t, "rating can not be more than 10", ValidationMessage(verrs))
}

func TestListingInput_Apply(t *testing.T) {
	l := validListing()
	name := "New Name"
	housing := true

	ListingInput{Name: &name, Housing: &housing}.Apply(l)

	assert.Equal(t, "New Name", l.Name)
	assert.True(t, l.Housing)
	assert.Equal(t, "Full stack web development", l.Description)
	assert.Equal(t, []string{"Web Development", "UI/UX"}, []string(l.Careers))
}

func TestCourseInput_Apply(t *testing.T) {
	c := &Course{Title: "Old", Weeks: 4}
	weeks := 12
	tuition := 9000.0

	CourseInput{Weeks: &weeks, Tuition: &tuition}.Apply(c)

	assert.Equal(t, "Old", c.Title)
	assert.Equal(t, 12, c.Weeks)
	require.NotNil(t, c.Tuition)
	assert.Equal(t, 9000.0, *c.Tuition)
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RolePublisher}).IsAdmin())

	var u *User
	assert.False(t, u.IsAdmin())
}
