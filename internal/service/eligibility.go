package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/tutor-match-api/internal/models"
	"github.com/noah-isme/tutor-match-api/internal/schedule"
)

type tutorContractSource interface {
	ListActiveByTutor(ctx context.Context, tutorID string) ([]models.ContractSchedule, error)
	CountActiveByTutor(ctx context.Context, tutorID string) (int, error)
}

// EligibilityParams describe the contract a tutor must be able to take.
type EligibilityParams struct {
	Pattern models.WeeklyPattern
	Mode    models.ContractMode
	// RequiredCenterID is the center an offline contract must be taught at.
	// Nil for online contracts.
	RequiredCenterID *string
	// MaxContractsPerTutor is the active primary-contract ceiling, injected
	// from configuration so the filter stays testable with different limits.
	MaxContractsPerTutor int
}

// EligibilityFilter reduces a tutor pool to those who can take a given
// contract: active account, center affiliation, contract-count ceiling,
// schedule compatibility and mode capability.
type EligibilityFilter struct {
	contracts tutorContractSource
	logger    *zap.Logger
}

// NewEligibilityFilter constructs an EligibilityFilter.
func NewEligibilityFilter(contracts tutorContractSource, logger *zap.Logger) *EligibilityFilter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EligibilityFilter{contracts: contracts, logger: logger}
}

// Filter returns the tutors eligible for the described contract. Per-tutor
// read failures exclude that tutor and continue the scan; only the caller's
// own malformed input aborts a matching run, and that is rejected before the
// filter is reached. Output order follows the input pool; sorting is the
// caller's concern.
func (f *EligibilityFilter) Filter(ctx context.Context, pool []models.Tutor, params EligibilityParams) []models.Tutor {
	eligible := make([]models.Tutor, 0, len(pool))
	for _, tutor := range pool {
		ok, err := f.check(ctx, tutor, params)
		if err != nil {
			f.logger.Warn("skipping tutor after eligibility read failure",
				zap.String("tutor_id", tutor.ID), zap.Error(err))
			continue
		}
		if ok {
			eligible = append(eligible, tutor)
		}
	}
	return eligible
}

func (f *EligibilityFilter) check(ctx context.Context, tutor models.Tutor, params EligibilityParams) (bool, error) {
	if tutor.Status != models.TutorStatusActive {
		return false, nil
	}
	if len(tutor.CenterIDs) == 0 {
		return false, nil
	}

	count, err := f.contracts.CountActiveByTutor(ctx, tutor.ID)
	if err != nil {
		return false, err
	}
	if count >= params.MaxContractsPerTutor {
		return false, nil
	}

	active, err := f.contracts.ListActiveByTutor(ctx, tutor.ID)
	if err != nil {
		return false, err
	}
	for _, contract := range active {
		if schedule.Overlaps(params.Pattern, contract.WeeklyPattern) {
			return false, nil
		}
	}

	switch params.Mode {
	case models.ContractModeOnline:
		return tutor.CanTeachOnline, nil
	case models.ContractModeOffline:
		if !tutor.CanTeachOffline || params.RequiredCenterID == nil {
			return false, nil
		}
		return tutor.HasCenter(*params.RequiredCenterID), nil
	default:
		return false, nil
	}
}
