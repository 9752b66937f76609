package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// maxSkillsPerEntity bounds a single skill set replacement.
const maxSkillsPerEntity = 50

type skillUsecase struct {
	skillRepo domain.SkillRepository
	validate  *validator.Validate
}

func NewSkillUsecase(skillRepo domain.SkillRepository, validate *validator.Validate) domain.SkillUsecase {
	return &skillUsecase{
		skillRepo: skillRepo,
		validate:  validate,
	}
}

func (u *skillUsecase) Resolve(ctx context.Context, name string) (*domain.Skill, error) {
	if err := checkSkillName(u.validate, name); err != nil {
		return nil, err
	}
	skill, err := u.skillRepo.Resolve(ctx, name)
	if err != nil {
		return nil, mapRepoError(err, "Skill not found")
	}
	return skill, nil
}

// ReplaceSkills replaces the entity's skill set with names, all treated as required.
func (u *skillUsecase) ReplaceSkills(ctx context.Context, kind domain.EntityKind, entityID int64, names []string) error {
	return u.ReplaceAssignments(ctx, kind, entityID, domain.RequiredAssignments(names))
}

func (u *skillUsecase) ReplaceAssignments(ctx context.Context, kind domain.EntityKind, entityID int64, skills []domain.SkillAssignment) error {
	if !kind.Valid() {
		return apperror.BadRequest(fmt.Sprintf("Unknown skill owner %q", kind))
	}
	if entityID <= 0 {
		return apperror.BadRequest("Invalid owner id")
	}

	normalized, err := normalizeSkills(u.validate, skills)
	if err != nil {
		return err
	}
	if kind == domain.EntityCandidate {
		for i := range normalized {
			normalized[i].Required = true
		}
	}

	if err := u.skillRepo.ReplaceEntitySkills(ctx, kind, entityID, normalized); err != nil {
		return mapRepoError(err, fmt.Sprintf("The %s does not exist", kind))
	}
	return nil
}

func (u *skillUsecase) GetSkills(ctx context.Context, kind domain.EntityKind, entityID int64) ([]domain.EntitySkill, error) {
	if !kind.Valid() {
		return nil, apperror.BadRequest(fmt.Sprintf("Unknown skill owner %q", kind))
	}
	skills, err := u.skillRepo.GetEntitySkills(ctx, kind, entityID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return skills, nil
}

func (u *skillUsecase) SearchSkills(ctx context.Context, query string) ([]domain.Skill, error) {
	query = domain.NormalizeSkillName(query)
	if utf8.RuneCountInString(query) > domain.MaxSkillNameLength {
		return nil, apperror.BadRequest("Search query is too long")
	}
	skills, err := u.skillRepo.Search(ctx, query, domain.SkillSearchLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return skills, nil
}

func checkSkillName(validate *validator.Validate, name string) error {
	if err := validate.Var(name, "skill_name"); err != nil {
		return apperror.Validation(
			fmt.Sprintf("Invalid skill name %q: must not be blank and at most %d characters", strings.TrimSpace(name), domain.MaxSkillNameLength),
			err,
		)
	}
	return nil
}

// normalizeSkills drops blank entries, collapses duplicates and rejects oversized input.
func normalizeSkills(validate *validator.Validate, skills []domain.SkillAssignment) ([]domain.SkillAssignment, error) {
	normalized := domain.NormalizeAssignments(skills)
	if len(normalized) > maxSkillsPerEntity {
		return nil, apperror.BadRequest(fmt.Sprintf("At most %d skills are allowed", maxSkillsPerEntity))
	}
	for _, s := range normalized {
		if err := checkSkillName(validate, s.Name); err != nil {
			return nil, err
		}
	}
	return normalized, nil
}
