package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobboard/internal/models"
	"jobboard/internal/services"
)

type JobHandler struct {
	jobService services.JobService
}

func NewJobHandler(jobService services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

type jobRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	SalaryMin   int    `json:"salary_min"`
	SalaryMax   int    `json:"salary_max"`
	CategoryID  int    `json:"category_id"`
}

// @Summary      Create job (staff)
// @Tags         Jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      jobRequest  true  "Job fields"
// @Success      201      {object}  models.Job
// @Router       /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, _ := getUserAndRole(c)
	job := &models.Job{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		CategoryID:  req.CategoryID,
		PostedBy:    userID,
	}
	if err := h.jobService.Create(job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, job)
}

// @Summary      List jobs
// @Tags         Jobs
// @Produce      json
// @Param        category  query     int     false  "Category ID"
// @Param        status    query     string  false  "open|closed"
// @Param        q         query     string  false  "Search in title/company"
// @Param        limit     query     int     false  "Page size"
// @Param        offset    query     int     false  "Offset"
// @Success      200       {array}   models.Job
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	categoryID, _ := strconv.Atoi(c.Query("category"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	jobs, err := h.jobService.List(models.JobFilter{
		CategoryID: categoryID,
		Status:     c.Query("status"),
		Search:     c.Query("q"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list jobs"})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// @Summary      Get job
// @Tags         Jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  models.Job
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	job, err := h.jobService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job"})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// @Summary      Update job (staff)
// @Tags         Jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int         true  "Job ID"
// @Param        request  body      jobRequest  true  "Job fields"
// @Success      200      {object}  models.Job
// @Router       /jobs/{id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	job := &models.Job{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		CategoryID:  req.CategoryID,
	}
	if err := h.jobService.Update(job); err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, job)
}

// @Summary      Close job (staff)
// @Tags         Jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /jobs/{id}/close [post]
func (h *JobHandler) Close(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	if err := h.jobService.Close(id); err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to close job"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Job closed"})
}

// @Summary      Delete job (staff)
// @Tags         Jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	if err := h.jobService.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete job"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Job deleted"})
}
