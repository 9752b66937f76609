package domain_test

import (
	"testing"

	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSkillKey(t *testing.T) {
	variants := []string{"React", " react", "REACT  ", "\treAct\n"}
	for _, v := range variants {
		assert.Equal(t, "react", domain.SkillKey(v), v)
	}
	assert.Equal(t, domain.SkillKey("machine learning"), domain.SkillKey("  Machine   Learning "))
}

func TestNormalizeSkillName(t *testing.T) {
	assert.Equal(t, "Node.js", domain.NormalizeSkillName("  Node.js "))
	assert.Equal(t, "Machine Learning", domain.NormalizeSkillName("Machine \t Learning"))
	assert.Equal(t, "", domain.NormalizeSkillName("   "))
}

func TestNormalizeAssignments(t *testing.T) {
	t.Run("Should drop blanks and collapse case variants", func(t *testing.T) {
		got := domain.NormalizeAssignments(domain.RequiredAssignments([]string{"Go", " ", "go ", "SQL", "", "GO"}))
		assert.Equal(t, []domain.SkillAssignment{
			{Name: "Go", Required: true},
			{Name: "SQL", Required: true},
		}, got)
	})

	t.Run("Should keep a skill required when listed both ways", func(t *testing.T) {
		got := domain.NormalizeAssignments([]domain.SkillAssignment{
			{Name: "Docker", Required: false},
			{Name: "docker", Required: true},
			{Name: "Helm", Required: false},
		})
		assert.Equal(t, []domain.SkillAssignment{
			{Name: "Docker", Required: true},
			{Name: "Helm", Required: false},
		}, got)
	})

	t.Run("Should return an empty set for nil input", func(t *testing.T) {
		got := domain.NormalizeAssignments(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestIdentityCandidateID(t *testing.T) {
	seeker := &domain.Identity{UserID: 7, Role: domain.RoleJobSeeker}
	id, ok := seeker.CandidateID()
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	company := &domain.Identity{UserID: 8, CompanyID: 3, Role: domain.RoleCompany}
	_, ok = company.CandidateID()
	assert.False(t, ok)
	assert.True(t, company.OwnsCompany(3))
	assert.False(t, company.OwnsCompany(4))

	var anonymous *domain.Identity
	_, ok = anonymous.CandidateID()
	assert.False(t, ok)
}
