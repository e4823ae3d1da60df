package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/noah-isme/tutor-match-api/internal/dto"
	"github.com/noah-isme/tutor-match-api/internal/models"
	"github.com/noah-isme/tutor-match-api/pkg/config"
	appErrors "github.com/noah-isme/tutor-match-api/pkg/errors"
)

type matchingContractReader interface {
	FindByID(ctx context.Context, id string) (*models.ContractSchedule, error)
	ListActiveByTutor(ctx context.Context, tutorID string) ([]models.ContractSchedule, error)
	CountActiveByTutor(ctx context.Context, tutorID string) (int, error)
}

type tutorPoolReader interface {
	ListActivePool(ctx context.Context) ([]models.Tutor, error)
}

type centerReader interface {
	FindByID(ctx context.Context, id string) (*models.Center, error)
	ChildCenterID(ctx context.Context, childID string) (*string, error)
}

type ratingReader interface {
	AverageRatings(ctx context.Context, tutorIDs []string) (map[string]float64, error)
}

type ratingCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// MatchingService answers "which tutors can take this contract". It composes
// the eligibility filter over the active tutor pool and decorates survivors
// with the optional rating and distance sort keys.
type MatchingService struct {
	contracts matchingContractReader
	tutors    tutorPoolReader
	centers   centerReader
	feedback  ratingReader
	cache     ratingCache
	filter    *EligibilityFilter
	cfg       config.MatchingConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMatchingService wires matching dependencies.
func NewMatchingService(
	contracts matchingContractReader,
	tutors tutorPoolReader,
	centers centerReader,
	feedback ratingReader,
	cache ratingCache,
	cfg config.MatchingConfig,
	validate *validator.Validate,
	logger *zap.Logger,
) *MatchingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxContractsPerTutor <= 0 {
		cfg.MaxContractsPerTutor = 5
	}
	return &MatchingService{
		contracts: contracts,
		tutors:    tutors,
		centers:   centers,
		feedback:  feedback,
		cache:     cache,
		filter:    NewEligibilityFilter(contracts, logger),
		cfg:       cfg,
		validator: validate,
		logger:    logger,
	}
}

// matchSubject is the schedule being matched, persisted or not.
type matchSubject struct {
	pattern  models.WeeklyPattern
	mode     models.ContractMode
	childID  string
	centerID *string
}

// FindAvailableTutors returns the tutors able to take an existing contract.
// An empty list is a valid outcome, distinct from a missing contract.
func (s *MatchingService) FindAvailableTutors(ctx context.Context, contractID string, opts dto.MatchOptions) ([]models.TutorCandidate, error) {
	contract, err := s.contracts.FindByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "contract not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load contract")
	}
	// A malformed subject schedule aborts the whole run; only per-tutor
	// failures are skippable.
	if err := contract.WeeklyPattern.Validate(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "contract schedule is malformed")
	}

	subject := matchSubject{
		pattern:  contract.WeeklyPattern,
		mode:     contract.Mode,
		childID:  contract.ChildID,
		centerID: contract.CenterID,
	}
	return s.match(ctx, subject, opts)
}

// PreviewAvailableTutors runs the same pipeline for a schedule that has no
// persisted contract yet. It never mutates state.
func (s *MatchingService) PreviewAvailableTutors(ctx context.Context, req dto.PreviewMatchRequest, opts dto.MatchOptions) ([]models.TutorCandidate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid match preview payload")
	}
	pattern, err := req.Schedule.ToPattern()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid candidate schedule")
	}

	subject := matchSubject{
		pattern:  pattern,
		mode:     models.ContractMode(req.Mode),
		childID:  req.ChildID,
		centerID: req.CenterID,
	}
	return s.match(ctx, subject, opts)
}

func (s *MatchingService) match(ctx context.Context, subject matchSubject, opts dto.MatchOptions) ([]models.TutorCandidate, error) {
	requiredCenter := subject.centerID
	if subject.mode == models.ContractModeOffline && requiredCenter == nil {
		childCenter, err := s.centers.ChildCenterID(ctx, subject.childID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "child not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load child center")
		}
		requiredCenter = childCenter
	}
	// A child without an assigned center can never receive an offline
	// match; that is an empty result, not an error.
	if subject.mode == models.ContractModeOffline && requiredCenter == nil {
		return []models.TutorCandidate{}, nil
	}

	pool, err := s.tutors.ListActivePool(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tutor pool")
	}

	eligible := s.filter.Filter(ctx, pool, EligibilityParams{
		Pattern:              subject.pattern,
		Mode:                 subject.mode,
		RequiredCenterID:     requiredCenter,
		MaxContractsPerTutor: s.cfg.MaxContractsPerTutor,
	})

	candidates := lo.Map(eligible, func(tutor models.Tutor, _ int) models.TutorCandidate {
		return models.TutorCandidate{Tutor: tutor}
	})

	if opts.SortByRating {
		s.decorateRatings(ctx, candidates)
	}
	if opts.SortByDistance && subject.mode == models.ContractModeOffline {
		s.decorateDistances(ctx, candidates, *requiredCenter)
	}
	sortCandidates(candidates, opts)

	return candidates, nil
}

// decorateRatings attaches per-tutor average ratings, consulting the cache
// first. Rating failures degrade to unrated candidates rather than failing
// the search.
func (s *MatchingService) decorateRatings(ctx context.Context, candidates []models.TutorCandidate) {
	missing := make([]string, 0, len(candidates))
	cached := make(map[string]float64, len(candidates))

	for _, candidate := range candidates {
		var rating float64
		if s.cache != nil && s.cache.Get(ctx, ratingCacheKey(candidate.ID), &rating) == nil {
			cached[candidate.ID] = rating
			continue
		}
		missing = append(missing, candidate.ID)
	}

	if len(missing) > 0 {
		fresh, err := s.feedback.AverageRatings(ctx, missing)
		if err != nil {
			s.logger.Warn("rating aggregation failed, returning unrated candidates", zap.Error(err))
		} else {
			for id, rating := range fresh {
				cached[id] = rating
				if s.cache != nil {
					if err := s.cache.Set(ctx, ratingCacheKey(id), rating, s.cfg.RatingCacheTTL); err != nil {
						s.logger.Debug("rating cache write failed", zap.String("tutor_id", id), zap.Error(err))
					}
				}
			}
		}
	}

	for i := range candidates {
		if rating, ok := cached[candidates[i].ID]; ok {
			r := rating
			candidates[i].AverageRating = &r
		}
	}
}

// decorateDistances attaches the distance from each tutor's home center
// (their first-listed affiliation) to the contract's center. Every eligible
// offline tutor is affiliated with the required center, so the home center
// is what actually differentiates candidates.
func (s *MatchingService) decorateDistances(ctx context.Context, candidates []models.TutorCandidate, centerID string) {
	target, err := s.centers.FindByID(ctx, centerID)
	if err != nil {
		s.logger.Warn("center lookup failed, skipping distance sort", zap.String("center_id", centerID), zap.Error(err))
		return
	}

	coords := map[string]*models.Center{}
	for i := range candidates {
		if len(candidates[i].CenterIDs) == 0 {
			continue
		}
		home := candidates[i].CenterIDs[0]
		center, ok := coords[home]
		if !ok {
			center, err = s.centers.FindByID(ctx, home)
			if err != nil {
				s.logger.Debug("tutor center lookup failed", zap.String("center_id", home), zap.Error(err))
				coords[home] = nil
				continue
			}
			coords[home] = center
		}
		if center == nil {
			continue
		}
		d := haversineKm(center.Latitude, center.Longitude, target.Latitude, target.Longitude)
		candidates[i].DistanceKm = &d
	}
}

// sortCandidates orders by rating descending, then distance ascending, each
// only when requested. Unrated tutors sort below rated ones; tutors without
// a computable distance sort last.
func sortCandidates(candidates []models.TutorCandidate, opts dto.MatchOptions) {
	if !opts.SortByRating && !opts.SortByDistance {
		return
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if opts.SortByRating {
			ri, rj := ratingValue(candidates[i]), ratingValue(candidates[j])
			if ri != rj {
				return ri > rj
			}
		}
		if opts.SortByDistance {
			di, dj := distanceValue(candidates[i]), distanceValue(candidates[j])
			if di != dj {
				return di < dj
			}
		}
		return false
	})
}

func ratingValue(c models.TutorCandidate) float64 {
	if c.AverageRating == nil {
		return -1
	}
	return *c.AverageRating
}

func distanceValue(c models.TutorCandidate) float64 {
	if c.DistanceKm == nil {
		return math.MaxFloat64
	}
	return *c.DistanceKm
}

func ratingCacheKey(tutorID string) string {
	return "matching:rating:" + tutorID
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
