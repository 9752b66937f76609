package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SkillHandler struct {
	skillUC   domain.SkillUsecase
	listingUC domain.ListingUsecase
}

func NewSkillHandler(public, seeker *gin.RouterGroup, skillUC domain.SkillUsecase, listingUC domain.ListingUsecase) {
	handler := &SkillHandler{skillUC: skillUC, listingUC: listingUC}

	public.GET("/skills", handler.Search)

	seeker.GET("/candidates/me/skills", handler.GetMySkills)
	seeker.PUT("/candidates/me/skills", handler.ReplaceMySkills)
	seeker.GET("/candidates/me/matches", handler.GetMatchedJobs)
}

type CandidateSkillsRequest struct {
	Skills []string `json:"skills" binding:"required"`
}

// SearchSkills godoc
// @Summary      Search the skill vocabulary
// @Tags         skills
// @Produce      json
// @Param        search  query     string  false  "Name fragment"
// @Success      200     {object}  response.Response{data=[]domain.Skill}
// @Router       /skills [get]
func (h *SkillHandler) Search(c *gin.Context) {
	skills, err := h.skillUC.SearchSkills(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skills", skills)
}

// GetMySkills godoc
// @Summary      Get my skills
// @Tags         skills
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.EntitySkill}
// @Router       /candidates/me/skills [get]
// @Security     BearerAuth
func (h *SkillHandler) GetMySkills(c *gin.Context) {
	skills, err := h.skillUC.GetSkills(c.Request.Context(), domain.EntityCandidate, c.GetInt64(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate skills", skills)
}

// ReplaceMySkills godoc
// @Summary      Replace my skills
// @Description  Replaces the whole skill set; unknown names are added to the vocabulary
// @Tags         skills
// @Accept       json
// @Produce      json
// @Param        body  body      CandidateSkillsRequest  true  "Skill names"
// @Success      200   {object}  response.Response{data=[]domain.EntitySkill}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /candidates/me/skills [put]
// @Security     BearerAuth
func (h *SkillHandler) ReplaceMySkills(c *gin.Context) {
	var req CandidateSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	candidateID := c.GetInt64(string(domain.KeyUserID))
	if err := h.skillUC.ReplaceSkills(c.Request.Context(), domain.EntityCandidate, candidateID, req.Skills); err != nil {
		c.Error(err)
		return
	}
	skills, err := h.skillUC.GetSkills(c.Request.Context(), domain.EntityCandidate, candidateID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate skills updated", skills)
}

// GetMatchedJobs godoc
// @Summary      Best matching open jobs
// @Description  Top open jobs for the caller ranked by required-skill coverage
// @Tags         skills
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobSummary}
// @Router       /candidates/me/matches [get]
// @Security     BearerAuth
func (h *SkillHandler) GetMatchedJobs(c *gin.Context) {
	jobs, err := h.listingUC.GetMatchedJobs(c.Request.Context(), c.GetInt64(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Matched jobs", jobs)
}
