package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes. applyLimit guards submissions only.
func NewApplicationHandler(seeker, company *gin.RouterGroup, applicationUC domain.ApplicationUsecase, applyLimit gin.HandlerFunc) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	seeker.POST("/candidates/jobs/:jobId/apply", applyLimit, handler.ApplyToJob)
	seeker.DELETE("/candidates/jobs/:jobId/apply", handler.Withdraw)
	seeker.GET("/candidates/applications", handler.GetMyApplications)

	company.GET("/employers/jobs/:jobId/applications", handler.ListJobApplications)
	company.PATCH("/employers/applications/:id", handler.UpdateApplicationStatus)
}

// ApplyToJobRequest is the request payload for applying to a job
type ApplyToJobRequest struct {
	CoverLetter string `json:"cover_letter"`
}

// ApplyToJob godoc
// @Summary      Apply to a job
// @Description  Submit an application for an open job (Job seeker only)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        jobId  path      int                true   "Job ID"
// @Param        body   body      ApplyToJobRequest  false  "Application data"
// @Success      201    {object}  response.Response{data=domain.Application}
// @Failure      409    {object}  response.Response
// @Failure      422    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /candidates/jobs/{jobId}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) ApplyToJob(c *gin.Context) {
	jobID, err := parseIDParam(c, "jobId", "job ID")
	if err != nil {
		c.Error(err)
		return
	}

	var req ApplyToJobRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), c.GetInt64(string(domain.KeyUserID)), jobID, req.CoverLetter)
	if err != nil {
		metrics.ObserveApplication(string(apperror.KindOf(err)))
		c.Error(err)
		return
	}
	metrics.ObserveApplication("accepted")

	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// WithdrawApplication godoc
// @Summary      Withdraw an application
// @Tags         applications
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /candidates/jobs/{jobId}/apply [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	jobID, err := parseIDParam(c, "jobId", "job ID")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.applicationUC.Withdraw(c.Request.Context(), c.GetInt64(string(domain.KeyUserID)), jobID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application withdrawn", nil)
}

// GetMyApplications godoc
// @Summary      Get my applications
// @Description  Get all applications submitted by the current job seeker
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      401  {object}  response.Response
// @Router       /candidates/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	applications, err := h.applicationUC.GetMyApplications(c.Request.Context(), c.GetInt64(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// ListJobApplications godoc
// @Summary      List applications for a job
// @Description  Get all applications for one of the caller's jobs (Company only)
// @Tags         applications
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=[]domain.Application}
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /employers/jobs/{jobId}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListJobApplications(c *gin.Context) {
	jobID, err := parseIDParam(c, "jobId", "job ID")
	if err != nil {
		c.Error(err)
		return
	}

	applications, err := h.applicationUC.ListByJobID(c.Request.Context(), c.GetInt64(string(domain.KeyCompanyID)), jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// UpdateStatusRequest is the request payload for updating application status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateApplicationStatus godoc
// @Summary      Update application status
// @Description  Move an application through the hiring pipeline (Company only)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Application ID"
// @Param        body  body      UpdateStatusRequest  true  "Status update"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /employers/applications/{id} [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id", "application ID")
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.applicationUC.UpdateApplicationStatus(c.Request.Context(), c.GetInt64(string(domain.KeyCompanyID)), id, req.Status); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", nil)
}
