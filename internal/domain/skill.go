package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrInvalidSkillName = errors.New("skill name must not be blank")

// MaxSkillNameLength matches the width of skills.name.
const MaxSkillNameLength = 100

// SkillSearchLimit caps vocabulary lookups for autocomplete.
const SkillSearchLimit = 20

// EntityKind selects which owner a skill set belongs to.
type EntityKind string

const (
	EntityCandidate EntityKind = "candidate"
	EntityJob       EntityKind = "job"
)

func (k EntityKind) Valid() bool {
	return k == EntityCandidate || k == EntityJob
}

// Skill is a canonical vocabulary entry shared by candidates and jobs.
type Skill struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// EntitySkill is one association of a candidate or job with a skill.
type EntitySkill struct {
	SkillID  int64  `json:"skill_id"`
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

// SkillAssignment is a requested association by free-text name.
// Required is meaningful only for jobs; candidate skills are always stored as plain membership.
type SkillAssignment struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

// NormalizeSkillName trims the name and collapses inner whitespace, keeping the original case.
func NormalizeSkillName(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// SkillKey is the comparison key two names must share to denote the same skill.
func SkillKey(raw string) string {
	return strings.ToLower(NormalizeSkillName(raw))
}

// RequiredAssignments turns plain names into required assignments.
func RequiredAssignments(names []string) []SkillAssignment {
	out := make([]SkillAssignment, 0, len(names))
	for _, n := range names {
		out = append(out, SkillAssignment{Name: n, Required: true})
	}
	return out
}

// NormalizeAssignments drops blank names and collapses entries sharing a SkillKey.
// The first spelling seen is kept; a skill listed as both required and optional stays required.
func NormalizeAssignments(in []SkillAssignment) []SkillAssignment {
	out := make([]SkillAssignment, 0, len(in))
	index := make(map[string]int, len(in))
	for _, a := range in {
		name := NormalizeSkillName(a.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if i, seen := index[key]; seen {
			out[i].Required = out[i].Required || a.Required
			continue
		}
		index[key] = len(out)
		out = append(out, SkillAssignment{Name: name, Required: a.Required})
	}
	return out
}

type SkillRepository interface {
	// Resolve returns the skill whose name matches case-insensitively, creating it on first use.
	Resolve(ctx context.Context, name string) (*Skill, error)
	// ReplaceEntitySkills swaps the whole skill set of an entity in one transaction.
	ReplaceEntitySkills(ctx context.Context, kind EntityKind, entityID int64, skills []SkillAssignment) error
	GetEntitySkills(ctx context.Context, kind EntityKind, entityID int64) ([]EntitySkill, error)
	GetCandidateSkillIDs(ctx context.Context, candidateID int64) ([]int64, error)
	Search(ctx context.Context, query string, limit int) ([]Skill, error)
}

type SkillUsecase interface {
	Resolve(ctx context.Context, name string) (*Skill, error)
	ReplaceSkills(ctx context.Context, kind EntityKind, entityID int64, names []string) error
	ReplaceAssignments(ctx context.Context, kind EntityKind, entityID int64, skills []SkillAssignment) error
	GetSkills(ctx context.Context, kind EntityKind, entityID int64) ([]EntitySkill, error)
	SearchSkills(ctx context.Context, query string) ([]Skill, error)
}
