package repository

import (
	"context"
	"database/sql"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campdirectory/internal/models"
	"campdirectory/internal/query"
)

var courseColumns = []string{
	"id", "title", "description", "weeks", "tuition", "minimum_skill",
	"scholarship_available", "listing_id", "user_id", "created_at",
}

func TestCourseRepository_Create(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewCourseRepository(db)
	tuition := 8000.0
	listingID := uuid.New().String()

	course := &models.Course{
		Title:        "Front End Web Development",
		Description:  "HTML, CSS, JavaScript",
		Weeks:        8,
		Tuition:      &tuition,
		MinimumSkill: "beginner",
		ListingID:    listingID,
		UserID:       uuid.New().String(),
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO courses (`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), course))
	assert.NotEmpty(t, course.ID)
	require.NotNil(t, course.Listing)
	assert.Equal(t, listingID, course.Listing.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_GetByID(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewCourseRepository(db)
	id := uuid.New().String()
	listingID := uuid.New().String()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM courses WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(courseColumns).
			AddRow(id, "UI/UX", "Design", 12, 10000.0, "intermediate", true, listingID, uuid.New().String(), time.Now()))

	course, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 12, course.Weeks)
	assert.Equal(t, 10000.0, *course.Tuition)
	assert.Equal(t, listingID, course.Listing.ID)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM courses WHERE id = $1`)).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCourseRepository_ListScoped(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewCourseRepository(db)
	listingID := uuid.New().String()

	q, err := query.Parse(CourseCollection, url.Values{})
	require.NoError(t, err)
	q.Scope("listing_id", listingID)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM courses WHERE listing_id = $1`)).
		WithArgs(listingID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM courses WHERE listing_id = $1 ORDER BY created_at DESC, id ASC LIMIT $2 OFFSET $3`)).
		WithArgs(listingID, 25, 0).
		WillReturnRows(sqlmock.NewRows(courseColumns).
			AddRow(uuid.New().String(), "UI/UX", "Design", 12, 10000.0, "intermediate", true, listingID, uuid.New().String(), time.Now()))

	courses, total, err := repo.List(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, courses, 1)
	assert.Equal(t, listingID, courses[0].Listing.ID)
}

func TestCourseRepository_ByListingIDs(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewCourseRepository(db)
	listingID := uuid.New().String()

	courses, err := repo.ByListingIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, courses)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM courses WHERE listing_id = ANY($1::uuid[]) ORDER BY created_at`)).
		WithArgs(pq.Array([]string{listingID})).
		WillReturnRows(sqlmock.NewRows(courseColumns).
			AddRow(uuid.New().String(), "Web", "Desc", 8, 8000.0, "beginner", false, listingID, uuid.New().String(), time.Now()))

	courses, err = repo.ByListingIDs(context.Background(), []string{listingID})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, listingID, courses[0].ListingID)
}

func TestCourseRepository_AverageTuition(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewCourseRepository(db)
	listingID := uuid.New().String()
	stmt := regexp.QuoteMeta(`SELECT AVG(tuition) FROM courses WHERE listing_id = $1`)

	t.Run("with courses", func(t *testing.T) {
		mock.ExpectQuery(stmt).WithArgs(listingID).
			WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(110.0))

		avg, err := repo.AverageTuition(context.Background(), listingID)
		require.NoError(t, err)
		require.NotNil(t, avg)
		assert.Equal(t, 110.0, *avg)
	})

	t.Run("no courses", func(t *testing.T) {
		mock.ExpectQuery(stmt).WithArgs(listingID).
			WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(nil))

		avg, err := repo.AverageTuition(context.Background(), listingID)
		require.NoError(t, err)
		assert.Nil(t, avg)
	})
}

func TestCourseRepository_UpdateDelete(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewCourseRepository(db)
	id := uuid.New().String()
	tuition := 1.0

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE courses SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), &models.Course{ID: id, Tuition: &tuition}), ErrNotFound)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM courses WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), id))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_ListingIDsByAuthor(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewCourseRepository(db)
	userID := uuid.New().String()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT c.listing_id FROM courses c`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"listing_id"}))

	ids, err := repo.ListingIDsByAuthor(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
