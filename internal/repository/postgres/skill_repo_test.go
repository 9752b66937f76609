package postgres

import (
	"testing"

	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestResolutionOrder(t *testing.T) {
	t.Run("Should resolve in the same order whatever the input order", func(t *testing.T) {
		a := resolutionOrder(domain.RequiredAssignments([]string{"Ynew", "xnew", "Zeta"}))
		b := resolutionOrder(domain.RequiredAssignments([]string{"Zeta", "Xnew", "ynew"}))

		assert.Equal(t, []string{"xnew", "Ynew", "Zeta"}, assignmentNames(a))
		assert.Equal(t, []string{"Xnew", "ynew", "Zeta"}, assignmentNames(b))
	})

	t.Run("Should collapse duplicates before ordering", func(t *testing.T) {
		got := resolutionOrder([]domain.SkillAssignment{
			{Name: "SQL"}, {Name: " go ", Required: true}, {Name: "sql", Required: true}, {Name: "  "},
		})
		assert.Equal(t, []domain.SkillAssignment{
			{Name: "go", Required: true},
			{Name: "SQL", Required: true},
		}, got)
	})
}

func assignmentNames(skills []domain.SkillAssignment) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, s.Name)
	}
	return out
}
