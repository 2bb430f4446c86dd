package parts

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"inventory/pkg/apperrors"
	"inventory/pkg/models"
	"inventory/pkg/security"
)

// PartRequest is the write payload. Updates are full replacements; the
// UpdatedAt field carries the optimistic-concurrency token the caller read.
type PartRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PartHandler struct {
	Service *PartService
}

func NewPartHandler(service *PartService) *PartHandler {
	return &PartHandler{Service: service}
}

func (h *PartHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/parts", security.Authorize("moderator"), h.CreatePart)
	router.PUT("/parts/:id", security.Authorize("moderator"), h.UpdatePart)
	router.GET("/parts", security.Authorize("user"), h.GetParts)
	router.GET("/parts/count", security.Authorize("user"), h.CountParts)
	router.GET("/parts/:id", security.Authorize("user"), h.GetPart)
	router.DELETE("/parts/:id", security.Authorize("admin"), h.DeletePart)
}

func (h *PartHandler) CreatePart(c *gin.Context) {
	var req PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	created, err := h.Service.CreatePart(&models.Part{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Make:        req.Make,
		Model:       req.Model,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *PartHandler) UpdatePart(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid part ID"})
		return
	}

	var req PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	updated, err := h.Service.UpdatePart(&models.Part{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Make:        req.Make,
		Model:       req.Model,
		UpdatedAt:   req.UpdatedAt,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *PartHandler) GetPart(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid part ID"})
		return
	}

	part, ok := h.Service.GetPart(id)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Part not found"})
		return
	}

	c.JSON(http.StatusOK, part)
}

func (h *PartHandler) GetParts(c *gin.Context) {
	var query struct {
		Category string `form:"category"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	parts := h.Service.GetParts(func(p *models.Part) bool {
		return query.Category == "" || p.Category == query.Category
	})

	c.JSON(http.StatusOK, parts)
}

func (h *PartHandler) CountParts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.Service.CountParts(nil)})
}

func (h *PartHandler) DeletePart(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid part ID"})
		return
	}

	if err := h.Service.DeletePart(id); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Part deleted successfully"})
}

func abortWithServiceError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *apperrors.ValidationError:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": e.Errors})
	case *apperrors.NotFoundError:
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *apperrors.ConcurrencyConflictError:
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": e.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to process part", "details": err.Error()})
	}
}
