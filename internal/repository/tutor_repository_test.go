package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutor-match-api/internal/models"
)

func TestTutorRepositoryListActivePool(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTutorRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "full_name", "email", "status", "can_teach_online", "can_teach_offline",
		"center_ids", "created_at", "updated_at",
	}).AddRow("tutor-1", "Tutor One", "one@example.com", "active", true, true, []byte("{center-1,center-2}"), now, now)

	mock.ExpectQuery("FROM tutors t").
		WithArgs(models.TutorStatusActive).
		WillReturnRows(rows)

	tutors, err := repo.ListActivePool(context.Background())
	require.NoError(t, err)
	require.Len(t, tutors, 1)
	assert.Equal(t, []string{"center-1", "center-2"}, []string(tutors[0].CenterIDs))
	assert.True(t, tutors[0].HasCenter("center-2"))
	assert.False(t, tutors[0].HasCenter("center-9"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepositoryAverageRatings(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeedbackRepository(db)

	mock.ExpectQuery("SELECT tutor_id, AVG\\(rating\\) AS average FROM feedback").
		WillReturnRows(sqlmock.NewRows([]string{"tutor_id", "average"}).
			AddRow("tutor-1", 4.5).
			AddRow("tutor-2", 3.25))

	ratings, err := repo.AverageRatings(context.Background(), []string{"tutor-1", "tutor-2", "tutor-3"})
	require.NoError(t, err)
	assert.Equal(t, 4.5, ratings["tutor-1"])
	assert.Equal(t, 3.25, ratings["tutor-2"])
	_, ok := ratings["tutor-3"]
	assert.False(t, ok, "tutors without feedback carry no rating")

	// Empty input short-circuits without touching the database.
	empty, err := repo.AverageRatings(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NoError(t, mock.ExpectationsWereMet())
}
