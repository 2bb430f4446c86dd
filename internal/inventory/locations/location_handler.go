package locations

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"inventory/pkg/apperrors"
	"inventory/pkg/models"
	"inventory/pkg/security"
)

// LocationRequest is the write payload. Updates are full replacements; the
// UpdatedAt field carries the optimistic-concurrency token the caller read.
type LocationRequest struct {
	OwnerID   int64     `json:"owner_id" binding:"required"`
	LocationA string    `json:"location_a"`
	LocationB string    `json:"location_b"`
	LocationC string    `json:"location_c"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LocationHandler struct {
	Service *LocationService
}

func NewLocationHandler(service *LocationService) *LocationHandler {
	return &LocationHandler{Service: service}
}

func (h *LocationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/locations", security.Authorize("moderator"), h.CreateLocation)
	router.PUT("/locations/:id", security.Authorize("moderator"), h.UpdateLocation)
	router.GET("/locations", security.Authorize("user"), h.GetLocations)
	router.GET("/locations/count", security.Authorize("user"), h.CountLocations)
	router.GET("/locations/:id", security.Authorize("user"), h.GetLocation)
	router.DELETE("/locations/:id", security.Authorize("admin"), h.DeleteLocation)
}

func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	created, err := h.Service.CreateLocation(&models.StorageLocation{
		OwnerID:   req.OwnerID,
		LocationA: req.LocationA,
		LocationB: req.LocationB,
		LocationC: req.LocationC,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	updated, err := h.Service.UpdateLocation(&models.StorageLocation{
		ID:        id,
		OwnerID:   req.OwnerID,
		LocationA: req.LocationA,
		LocationB: req.LocationB,
		LocationC: req.LocationC,
		UpdatedAt: req.UpdatedAt,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *LocationHandler) GetLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	location, ok := h.Service.GetLocation(id)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Storage location not found"})
		return
	}

	c.JSON(http.StatusOK, location)
}

func (h *LocationHandler) GetLocations(c *gin.Context) {
	var query struct {
		OwnerID *int64 `form:"owner_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	locations := h.Service.GetLocations(func(l *models.StorageLocation) bool {
		return query.OwnerID == nil || l.OwnerID == *query.OwnerID
	})

	c.JSON(http.StatusOK, locations)
}

func (h *LocationHandler) CountLocations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.Service.CountLocations(nil)})
}

func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	if err := h.Service.DeleteLocation(id); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Storage location deleted successfully"})
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
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to process storage location", "details": err.Error()})
	}
}
