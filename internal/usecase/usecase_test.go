package usecase_test

import (
	"context"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockSkillRepo struct {
	mock.Mock
}

func (m *MockSkillRepo) Resolve(ctx context.Context, name string) (*domain.Skill, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Skill), args.Error(1)
}

func (m *MockSkillRepo) ReplaceEntitySkills(ctx context.Context, kind domain.EntityKind, entityID int64, skills []domain.SkillAssignment) error {
	return m.Called(ctx, kind, entityID, skills).Error(0)
}

func (m *MockSkillRepo) GetEntitySkills(ctx context.Context, kind domain.EntityKind, entityID int64) ([]domain.EntitySkill, error) {
	args := m.Called(ctx, kind, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntitySkill), args.Error(1)
}

func (m *MockSkillRepo) GetCandidateSkillIDs(ctx context.Context, candidateID int64) ([]int64, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockSkillRepo) Search(ctx context.Context, query string, limit int) ([]domain.Skill, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Skill), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job, skills []domain.SkillAssignment) error {
	return m.Called(ctx, job, skills).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) GetByIDWithCompany(ctx context.Context, id int64) (*domain.JobWithCompany, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobWithCompany), args.Error(1)
}

func (m *MockJobRepo) FetchByCompanyID(ctx context.Context, companyID int64, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job, skills []domain.SkillAssignment) error {
	return m.Called(ctx, job, skills).Error(0)
}

func (m *MockJobRepo) Close(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobRepo) Reactivate(ctx context.Context, id int64, expiresAt time.Time) error {
	return m.Called(ctx, id, expiresAt).Error(0)
}

func (m *MockJobRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepo) RecountApplications(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) ListRecent(ctx context.Context, filter domain.JobFilter, viewerID int64, now time.Time, limit, offset int) ([]domain.JobSummary, int64, error) {
	args := m.Called(ctx, filter, viewerID, now, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.JobSummary), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingRepo) ListScoringRows(ctx context.Context, filter domain.JobFilter, now time.Time) ([]domain.ScoringRow, error) {
	args := m.Called(ctx, filter, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScoringRow), args.Error(1)
}

func (m *MockListingRepo) GetSummaries(ctx context.Context, ids []int64, viewerID int64) ([]domain.JobSummary, error) {
	args := m.Called(ctx, ids, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobSummary), args.Error(1)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application, now time.Time) error {
	return m.Called(ctx, app, now).Error(0)
}

func (m *MockApplicationRepo) Delete(ctx context.Context, candidateID, jobID int64) error {
	return m.Called(ctx, candidateID, jobID).Error(0)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByCandidateID(ctx context.Context, candidateID int64) ([]domain.Application, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) CheckExists(ctx context.Context, jobID, candidateID int64) (bool, error) {
	args := m.Called(ctx, jobID, candidateID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

var anyTime = mock.AnythingOfType("time.Time")
