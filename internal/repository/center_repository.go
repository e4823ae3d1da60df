package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutor-match-api/internal/models"
)

// CenterRepository reads center and child-center facts from the directory
// tables.
type CenterRepository struct {
	db *sqlx.DB
}

// NewCenterRepository constructs a CenterRepository.
func NewCenterRepository(db *sqlx.DB) *CenterRepository {
	return &CenterRepository{db: db}
}

// FindByID fetches a center with its coordinates.
func (r *CenterRepository) FindByID(ctx context.Context, id string) (*models.Center, error) {
	const query = `SELECT id, name, latitude, longitude, created_at, updated_at FROM centers WHERE id = $1`
	var center models.Center
	if err := r.db.GetContext(ctx, &center, query, id); err != nil {
		return nil, err
	}
	return &center, nil
}

// ChildCenterID returns the center assigned to a child, or nil when the
// child has none.
func (r *CenterRepository) ChildCenterID(ctx context.Context, childID string) (*string, error) {
	const query = `SELECT center_id FROM children WHERE id = $1`
	var centerID sql.NullString
	if err := r.db.GetContext(ctx, &centerID, query, childID); err != nil {
		return nil, err
	}
	if !centerID.Valid {
		return nil, nil
	}
	return &centerID.String, nil
}
