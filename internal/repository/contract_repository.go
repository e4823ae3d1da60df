package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutor-match-api/internal/models"
)

const contractColumns = `id, child_id, primary_tutor_id, mode, center_id, status, days, start_minute, end_minute, effective_from, effective_until, created_at, updated_at`

// ContractRepository reads the schedule slice of contracts. Contract
// lifecycle writes belong to the contract management service; this API only
// consumes them.
type ContractRepository struct {
	db *sqlx.DB
}

// NewContractRepository constructs a ContractRepository.
func NewContractRepository(db *sqlx.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// FindByID fetches a contract schedule by ID.
func (r *ContractRepository) FindByID(ctx context.Context, id string) (*models.ContractSchedule, error) {
	query := fmt.Sprintf(`SELECT %s FROM contracts WHERE id = $1`, contractColumns)
	var contract models.ContractSchedule
	if err := r.db.GetContext(ctx, &contract, query, id); err != nil {
		return nil, err
	}
	return &contract, nil
}

// ListActiveByTutor returns the active contracts where the tutor is the
// primary assignee.
func (r *ContractRepository) ListActiveByTutor(ctx context.Context, tutorID string) ([]models.ContractSchedule, error) {
	query := fmt.Sprintf(`SELECT %s FROM contracts WHERE primary_tutor_id = $1 AND status = $2 ORDER BY effective_from`, contractColumns)
	var contracts []models.ContractSchedule
	if err := r.db.SelectContext(ctx, &contracts, query, tutorID, models.ContractStatusActive); err != nil {
		return nil, fmt.Errorf("list active contracts for tutor %s: %w", tutorID, err)
	}
	return contracts, nil
}

// CountActiveByTutor counts active primary assignments for the tutor.
func (r *ContractRepository) CountActiveByTutor(ctx context.Context, tutorID string) (int, error) {
	const query = `SELECT COUNT(*) FROM contracts WHERE primary_tutor_id = $1 AND status = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, tutorID, models.ContractStatusActive); err != nil {
		return 0, fmt.Errorf("count active contracts for tutor %s: %w", tutorID, err)
	}
	return count, nil
}
