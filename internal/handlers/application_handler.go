package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/services"
)

type ApplicationHandler struct {
	applicationService services.ApplicationService
}

func NewApplicationHandler(applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

type applyRequest struct {
	CoverLetter string `json:"cover_letter"`
	ResumeURL   string `json:"resume_url"`
}

// @Summary      Apply to a job
// @Tags         Applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int           true   "Job ID"
// @Param        request  body      applyRequest  false  "Cover letter and resume"
// @Success      201      {object}  models.Application
// @Failure      409      {object}  map[string]string
// @Router       /jobs/{id}/apply [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	var req applyRequest
	// тело опционально
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, _ := getUserAndRole(c)

	app, err := h.applicationService.Apply(userID, jobID, req.CoverLetter, req.ResumeURL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		case errors.Is(err, services.ErrJobClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "job is closed"})
		case errors.Is(err, services.ErrAlreadyApplied):
			c.JSON(http.StatusConflict, gin.H{"error": "already applied to this job"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply"})
		}
		return
	}
	c.JSON(http.StatusCreated, app)
}

// @Summary      My applications
// @Tags         Applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Application
// @Router       /applications/my [get]
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	apps, err := h.applicationService.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list applications"})
		return
	}
	c.JSON(http.StatusOK, apps)
}

// @Summary      Applications for a job (staff)
// @Tags         Applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     int  true  "Job ID"
// @Success      200  {array}  models.Application
// @Router       /jobs/{id}/applications [get]
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	jobID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	apps, err := h.applicationService.ListByJob(jobID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list applications"})
		return
	}
	c.JSON(http.StatusOK, apps)
}

type applicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// @Summary      Update application status (staff)
// @Tags         Applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                       true  "Application ID"
// @Param        request  body      applicationStatusRequest  true  "New status"
// @Success      200      {object}  map[string]interface{}
// @Router       /applications/{id}/status [post]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
		return
	}
	var req applicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.applicationService.UpdateStatus(id, req.Status); err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status updated"})
}

// @Summary      Export applicants as PDF (staff)
// @Tags         Applications
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  int  true  "Job ID"
// @Success      200
// @Router       /jobs/{id}/applications/export [get]
func (h *ApplicationHandler) ExportPDF(c *gin.Context) {
	jobID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	path, err := h.applicationService.ExportApplicantsPDF(jobID)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate PDF"})
		return
	}
	c.FileAttachment(path, "applicants.pdf")
}
