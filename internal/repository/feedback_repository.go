package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// FeedbackRepository aggregates tutor ratings from completed session
// feedback.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository constructs a FeedbackRepository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// AverageRatings returns the mean rating per tutor over completed feedback.
// Tutors without feedback are absent from the result.
func (r *FeedbackRepository) AverageRatings(ctx context.Context, tutorIDs []string) (map[string]float64, error) {
	if len(tutorIDs) == 0 {
		return map[string]float64{}, nil
	}

	const query = `SELECT tutor_id, AVG(rating) AS average FROM feedback WHERE status = 'completed' AND tutor_id = ANY($1) GROUP BY tutor_id`
	rows := []struct {
		TutorID string  `db:"tutor_id"`
		Average float64 `db:"average"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(tutorIDs)); err != nil {
		return nil, fmt.Errorf("aggregate tutor ratings: %w", err)
	}

	ratings := make(map[string]float64, len(rows))
	for _, row := range rows {
		ratings[row.TutorID] = row.Average
	}
	return ratings, nil
}
