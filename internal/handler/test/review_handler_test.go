package test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"campdirectory/internal/apperror"
	"campdirectory/internal/models"
)

func TestCreateReviewHandler(t *testing.T) {
	title, text, rating := "Great", "Learned a lot", 9
	in := models.ReviewInput{Title: &title, Text: &text, Rating: &rating}

	tests := []struct {
		name           string
		result         *models.Review
		err            error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "first review",
			result:         &models.Review{ID: "r1", Title: title, Text: text, Rating: rating, UserID: "u1", ListingID: "l1"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "second review",
			err:            apperror.NewConflict("User u1 has already reviewed listing l1", nil),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "User u1 has already reviewed listing l1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := newTestHandlers(t)
			th.reviews.On("Create", mock.Anything, reviewer, "l1", in).Return(tt.result, tt.err)

			req := withVars(withUser(jsonRequest(t, http.MethodPost, "/api/v1/listings/l1/reviews", in), reviewer),
				map[string]string{"listingId": "l1"})
			rec := httptest.NewRecorder()
			th.CreateReview(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedError, decodeEnvelope(t, rec).Error)
		})
	}
}

func TestGetReviewsHandler_InvalidRating(t *testing.T) {
	th := newTestHandlers(t)

	rec := httptest.NewRecorder()
	th.GetReviews(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reviews?rating[gte]=high", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	th.reviews.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetReviewHandler(t *testing.T) {
	th := newTestHandlers(t)
	th.reviews.On("Get", mock.Anything, "r1").Return(&models.Review{
		ID: "r1", Rating: 7, Listing: &models.ListingRef{ID: "l1", Name: "Devworks"},
	}, nil)

	rec := httptest.NewRecorder()
	th.GetReview(rec, withVars(httptest.NewRequest(http.MethodGet, "/api/v1/reviews/r1", nil), map[string]string{"id": "r1"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"name":"Devworks"`)
}

func TestDeleteReviewHandler(t *testing.T) {
	th := newTestHandlers(t)
	th.reviews.On("Delete", mock.Anything, reviewer, "r1").Return(nil)

	rec := httptest.NewRecorder()
	th.DeleteReview(rec, withVars(withUser(httptest.NewRequest(http.MethodDelete, "/api/v1/reviews/r1", nil), reviewer),
		map[string]string{"id": "r1"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	th.reviews.AssertExpectations(t)
}
