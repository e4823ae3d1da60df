package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutor-match-api/internal/models"
)

// TutorRepository reads the tutor pool from the user directory tables.
type TutorRepository struct {
	db *sqlx.DB
}

// NewTutorRepository constructs a TutorRepository.
func NewTutorRepository(db *sqlx.DB) *TutorRepository {
	return &TutorRepository{db: db}
}

// ListActivePool returns active tutors with at least one center affiliation,
// each carrying their aggregated center IDs. Tutors without any center link
// are excluded here already; affiliation is a directory prerequisite even
// for online-only tutors.
func (r *TutorRepository) ListActivePool(ctx context.Context) ([]models.Tutor, error) {
	const query = `SELECT t.id, t.full_name, t.email, t.status, t.can_teach_online, t.can_teach_offline,
		array_agg(tc.center_id) AS center_ids, t.created_at, t.updated_at
		FROM tutors t
		JOIN tutor_centers tc ON tc.tutor_id = t.id
		WHERE t.status = $1
		GROUP BY t.id
		ORDER BY t.full_name`
	var tutors []models.Tutor
	if err := r.db.SelectContext(ctx, &tutors, query, models.TutorStatusActive); err != nil {
		return nil, fmt.Errorf("list active tutor pool: %w", err)
	}
	return tutors, nil
}

// FindByID fetches a single tutor with center affiliations. Tutors without
// center links are returned with an empty center set.
func (r *TutorRepository) FindByID(ctx context.Context, id string) (*models.Tutor, error) {
	const query = `SELECT t.id, t.full_name, t.email, t.status, t.can_teach_online, t.can_teach_offline,
		array_remove(array_agg(tc.center_id), NULL) AS center_ids, t.created_at, t.updated_at
		FROM tutors t
		LEFT JOIN tutor_centers tc ON tc.tutor_id = t.id
		WHERE t.id = $1
		GROUP BY t.id`
	var tutor models.Tutor
	if err := r.db.GetContext(ctx, &tutor, query, id); err != nil {
		return nil, err
	}
	return &tutor, nil
}
