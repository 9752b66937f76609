package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// ListingConfig caps page sizes per sort mode.
type ListingConfig struct {
	RecentPageSize   int
	MatchPageSize    int
	MatchedJobsLimit int
}

type listingUsecase struct {
	listingRepo domain.ListingRepository
	skillRepo   domain.SkillRepository
	validate    *validator.Validate
	cfg         ListingConfig
	now         func() time.Time
}

func NewListingUsecase(
	listingRepo domain.ListingRepository,
	skillRepo domain.SkillRepository,
	validate *validator.Validate,
	cfg ListingConfig,
) domain.ListingUsecase {
	if cfg.RecentPageSize <= 0 {
		cfg.RecentPageSize = 50
	}
	if cfg.MatchPageSize <= 0 {
		cfg.MatchPageSize = 10
	}
	if cfg.MatchedJobsLimit <= 0 {
		cfg.MatchedJobsLimit = 10
	}
	return &listingUsecase{
		listingRepo: listingRepo,
		skillRepo:   skillRepo,
		validate:    validate,
		cfg:         cfg,
		now:         time.Now,
	}
}

// ListJobs returns one page of open jobs. Match sorting needs a job seeker; anyone else gets recent order.
func (u *listingUsecase) ListJobs(ctx context.Context, query domain.ListingQuery, viewer *domain.Identity) (*domain.JobPage, error) {
	if err := u.validate.Struct(query); err != nil {
		return nil, validationError(err)
	}
	query.Search = strings.TrimSpace(query.Search)

	candidateID, isSeeker := viewer.CandidateID()
	mode := query.Sort
	if mode == "" || (mode == domain.SortMatch && !isSeeker) {
		mode = domain.SortRecent
	}

	page := query.Page
	if page < 1 {
		page = 1
	}

	now := u.now()
	if mode == domain.SortMatch {
		return u.listByMatch(ctx, query.JobFilter, candidateID, now, page, clampPageSize(query.PageSize, u.cfg.MatchPageSize))
	}

	size := clampPageSize(query.PageSize, u.cfg.RecentPageSize)
	jobs, total, err := u.listingRepo.ListRecent(ctx, query.JobFilter, candidateID, now, size, (page-1)*size)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.JobPage{Jobs: jobs, Total: total, Page: page, PageSize: size, Sort: domain.SortRecent}, nil
}

// GetMatchedJobs returns the candidate's best matching open jobs.
func (u *listingUsecase) GetMatchedJobs(ctx context.Context, candidateID int64) ([]domain.JobSummary, error) {
	if candidateID <= 0 {
		return nil, apperror.Unauthorized("Job seeker identity required")
	}
	page, err := u.listByMatch(ctx, domain.JobFilter{}, candidateID, u.now(), 1, u.cfg.MatchedJobsLimit)
	if err != nil {
		return nil, err
	}
	return page.Jobs, nil
}

func (u *listingUsecase) listByMatch(ctx context.Context, filter domain.JobFilter, candidateID int64, now time.Time, page, size int) (*domain.JobPage, error) {
	var (
		skillIDs []int64
		rows     []domain.ScoringRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ids, err := u.skillRepo.GetCandidateSkillIDs(gctx, candidateID)
		skillIDs = ids
		return err
	})
	g.Go(func() error {
		r, err := u.listingRepo.ListScoringRows(gctx, filter, now)
		rows = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperror.Internal(err)
	}

	ranked := rankByMatch(rows, domain.NewSkillSet(skillIDs...))
	result := &domain.JobPage{
		Jobs:     []domain.JobSummary{},
		Total:    int64(len(ranked)),
		Page:     page,
		PageSize: size,
		Sort:     domain.SortMatch,
	}

	start := (page - 1) * size
	if start >= len(ranked) {
		return result, nil
	}
	end := min(start+size, len(ranked))
	window := ranked[start:end]

	ids := make([]int64, len(window))
	for i, m := range window {
		ids[i] = m.JobID
	}
	summaries, err := u.listingRepo.GetSummaries(ctx, ids, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	byID := make(map[int64]domain.JobSummary, len(summaries))
	for _, s := range summaries {
		byID[s.ID] = s
	}
	for _, m := range window {
		// A job deleted between scoring and hydration is dropped from the page.
		if s, ok := byID[m.JobID]; ok {
			result.Jobs = append(result.Jobs, s.WithMatch(m.MatchResult))
		}
	}
	return result, nil
}

type rankedJob struct {
	domain.MatchResult
	postedAt time.Time
}

// rankByMatch orders by match percentage, then newest first, then highest id.
func rankByMatch(rows []domain.ScoringRow, candidate domain.SkillSet) []rankedJob {
	ranked := make([]rankedJob, len(rows))
	for i, row := range rows {
		ranked[i] = rankedJob{
			MatchResult: domain.Score(row.JobID, candidate, domain.NewSkillSet(row.RequiredSkillIDs...)),
			postedAt:    row.PostedAt,
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.MatchPercentage != b.MatchPercentage {
			return a.MatchPercentage > b.MatchPercentage
		}
		if !a.postedAt.Equal(b.postedAt) {
			return a.postedAt.After(b.postedAt)
		}
		return a.JobID > b.JobID
	})
	return ranked
}

func clampPageSize(requested, limit int) int {
	if requested <= 0 || requested > limit {
		return limit
	}
	return requested
}
