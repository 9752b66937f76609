package v1

import (
	"net/http"
	"time"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC     domain.JobUsecase
	listingUC domain.ListingUsecase
}

func NewJobHandler(optional, company *gin.RouterGroup, jobUC domain.JobUsecase, listingUC domain.ListingUsecase) {
	handler := &JobHandler{jobUC: jobUC, listingUC: listingUC}

	// Open listing; a token only personalises the result
	optional.GET("/jobs", handler.List)
	optional.GET("/jobs/:id", handler.GetDetails)
	optional.GET("/categories", handler.ListCategories)

	company.POST("/jobs", handler.Create)
	company.PUT("/jobs/:id", handler.Update)
	company.PUT("/jobs/:id/skills", handler.UpdateSkills)
	company.POST("/jobs/:id/close", handler.Close)
	company.POST("/jobs/:id/reactivate", handler.Reactivate)
	company.GET("/employers/jobs", handler.ListByEmployer)
}

// JobRequest is the payload for creating or updating a job.
// Omitting skills on update leaves the current set untouched; an empty list clears it.
type JobRequest struct {
	Title           string                   `json:"title" binding:"required"`
	Description     string                   `json:"description" binding:"required"`
	Location        string                   `json:"location" binding:"required"`
	JobType         string                   `json:"job_type" binding:"required"`
	ExperienceLevel string                   `json:"experience_level"`
	CategoryID      *int64                   `json:"category_id"`
	SalaryMin       *int64                   `json:"salary_min"`
	SalaryMax       *int64                   `json:"salary_max"`
	SalaryCurrency  string                   `json:"salary_currency"`
	Remote          bool                     `json:"remote"`
	Skills          []domain.SkillAssignment `json:"skills"`
}

func (r JobRequest) toJob() *domain.Job {
	return &domain.Job{
		Title:           r.Title,
		Description:     r.Description,
		Location:        r.Location,
		JobType:         r.JobType,
		ExperienceLevel: r.ExperienceLevel,
		CategoryID:      r.CategoryID,
		SalaryMin:       r.SalaryMin,
		SalaryMax:       r.SalaryMax,
		SalaryCurrency:  r.SalaryCurrency,
		Remote:          r.Remote,
	}
}

type JobSkillsRequest struct {
	Skills []domain.SkillAssignment `json:"skills" binding:"required"`
}

type ReactivateRequest struct {
	Days int `json:"days"`
}

// ListJobs godoc
// @Summary      List open jobs
// @Description  Lists open jobs by recency, or by skill match for an authenticated job seeker
// @Tags         jobs
// @Produce      json
// @Param        category_id  query     int     false  "Category ID"
// @Param        search       query     string  false  "Search title, description and location"
// @Param        job_type     query     string  false  "Job type"
// @Param        remote       query     bool    false  "Remote only"
// @Param        sort         query     string  false  "recent or match"
// @Param        page         query     int     false  "Page number"
// @Param        page_size    query     int     false  "Page size"
// @Success      200          {object}  response.Response{data=domain.JobPage}
// @Failure      400          {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	query, err := parseListingQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	start := time.Now()
	page, err := h.listingUC.ListJobs(c.Request.Context(), query, middleware.Identity(c))
	if err != nil {
		c.Error(err)
		return
	}
	metrics.ObserveListing(string(page.Sort), time.Since(start))

	response.Success(c, http.StatusOK, "Job list", page)
}

// GetJobDetails godoc
// @Summary      Get job details
// @Description  Open jobs are public; closed or expired jobs are visible only to the owning company
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.JobDetail}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, err := parseIDParam(c, "id", "job ID")
	if err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.GetJobDetails(c.Request.Context(), id, middleware.Identity(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

// CreateJob godoc
// @Summary      Create a new job
// @Description  Create a job posting with its skill set (Company only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job := req.toJob()
	companyID := c.GetInt64(string(domain.KeyCompanyID))
	if err := h.jobUC.CreateJob(c.Request.Context(), companyID, job, req.Skills); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// UpdateJob godoc
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int         true  "Job ID"
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id", "job ID")
	if err != nil {
		c.Error(err)
		return
	}
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job := req.toJob()
	job.ID = id
	companyID := c.GetInt64(string(domain.KeyCompanyID))
	if err := h.jobUC.UpdateJob(c.Request.Context(), companyID, job, req.Skills); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", job)
}

// UpdateJobSkills godoc
// @Summary      Replace a job's skill set
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "Job ID"
// @Param        body  body      JobSkillsRequest  true  "Skills"
// @Success      200   {object}  response.Response{data=[]domain.EntitySkill}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /jobs/{id}/skills [put]
// @Security     BearerAuth
func (h *JobHandler) UpdateSkills(c *gin.Context) {
	id, err := parseIDParam(c, "id", "job ID")
	if err != nil {
		c.Error(err)
		return
	}
	var req JobSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	skills, err := h.jobUC.UpdateJobSkills(c.Request.Context(), c.GetInt64(string(domain.KeyCompanyID)), id, req.Skills)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job skills updated", skills)
}

// CloseJob godoc
// @Summary      Close a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/close [post]
// @Security     BearerAuth
func (h *JobHandler) Close(c *gin.Context) {
	id, err := parseIDParam(c, "id", "job ID")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.jobUC.CloseJob(c.Request.Context(), c.GetInt64(string(domain.KeyCompanyID)), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job closed", nil)
}

// ReactivateJob godoc
// @Summary      Reactivate a job
// @Description  Reopens a job for the given number of days (1-365, default lifetime when omitted)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      int                true   "Job ID"
// @Param        body  body      ReactivateRequest  false  "Days"
// @Success      200   {object}  response.Response{data=domain.Job}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /jobs/{id}/reactivate [post]
// @Security     BearerAuth
func (h *JobHandler) Reactivate(c *gin.Context) {
	id, err := parseIDParam(c, "id", "job ID")
	if err != nil {
		c.Error(err)
		return
	}
	var req ReactivateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
	}

	job, err := h.jobUC.ReactivateJob(c.Request.Context(), c.GetInt64(string(domain.KeyCompanyID)), id, req.Days)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job reactivated", job)
}

// ListEmployerJobs godoc
// @Summary      List my company's jobs
// @Description  Lists every job of the caller's company regardless of status
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response{data=response.Page}
// @Router       /employers/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListByEmployer(c *gin.Context) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		c.Error(err)
		return
	}
	pageSize, err := queryInt(c, "page_size", 20)
	if err != nil {
		c.Error(err)
		return
	}

	jobs, total, err := h.jobUC.ListJobsByCompany(c.Request.Context(), c.GetInt64(string(domain.KeyCompanyID)), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Employer job list", response.Page{
		Items:    jobs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// ListCategories godoc
// @Summary      List job categories
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Category}
// @Router       /categories [get]
func (h *JobHandler) ListCategories(c *gin.Context) {
	categories, err := h.jobUC.ListCategories(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Categories", categories)
}
