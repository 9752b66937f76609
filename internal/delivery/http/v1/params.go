package v1

import (
	"strconv"
	"strings"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context, name, label string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid " + label)
	}
	return id, nil
}

// queryInt returns fallback when the parameter is absent and a 400 when it is malformed.
func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.BadRequest("Invalid " + name)
	}
	return v, nil
}

func parseListingQuery(c *gin.Context) (domain.ListingQuery, error) {
	q := domain.ListingQuery{
		JobFilter: domain.JobFilter{
			Search:  c.Query("search"),
			JobType: strings.TrimSpace(c.Query("job_type")),
		},
		Sort: domain.SortMode(strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort", string(domain.SortRecent))))),
	}

	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, apperror.BadRequest("Invalid category_id")
		}
		q.CategoryID = &id
	}
	if raw := strings.TrimSpace(c.Query("remote")); raw != "" {
		remote, err := strconv.ParseBool(raw)
		if err != nil {
			return q, apperror.BadRequest("Invalid remote flag")
		}
		q.Remote = &remote
	}

	var err error
	if q.Page, err = queryInt(c, "page", 1); err != nil {
		return q, err
	}
	if q.PageSize, err = queryInt(c, "page_size", 0); err != nil {
		return q, err
	}
	return q, nil
}
