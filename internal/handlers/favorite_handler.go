package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/services"
)

type FavoriteHandler struct {
	favoriteService services.FavoriteService
}

func NewFavoriteHandler(favoriteService services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// @Summary      Add job to favorites
// @Tags         Favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Job ID"
// @Success      201  {object}  models.Favorite
// @Failure      409  {object}  map[string]string
// @Router       /favorites/{id} [post]
func (h *FavoriteHandler) Add(c *gin.Context) {
	jobID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	userID, _ := getUserAndRole(c)

	fav, err := h.favoriteService.Add(userID, jobID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		case errors.Is(err, services.ErrAlreadyFavorite):
			c.JSON(http.StatusConflict, gin.H{"error": "job already in favorites"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add favorite"})
		}
		return
	}
	c.JSON(http.StatusCreated, fav)
}

// @Summary      Remove job from favorites
// @Tags         Favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /favorites/{id} [delete]
func (h *FavoriteHandler) Remove(c *gin.Context) {
	jobID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	userID, _ := getUserAndRole(c)
	if err := h.favoriteService.Remove(userID, jobID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Removed from favorites"})
}

// @Summary      List favorite jobs
// @Tags         Favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Job
// @Router       /favorites [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	jobs, err := h.favoriteService.ListJobs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list favorites"})
		return
	}
	c.JSON(http.StatusOK, jobs)
}
