package assets

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inventory/pkg/apperrors"
	"inventory/pkg/metadata"
	"inventory/pkg/models"
	"inventory/pkg/security"
)

type AssetHandler struct {
	Service *AssetService
}

func NewAssetHandler(service *AssetService) *AssetHandler {
	return &AssetHandler{Service: service}
}

func (h *AssetHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/assets", security.Authorize("moderator"), h.CreateAsset)
	router.PUT("/assets/:id", security.Authorize("moderator"), h.UpdateAsset)
	router.GET("/assets", security.Authorize("user"), h.GetAssets)
	router.GET("/assets/count", security.Authorize("user"), h.CountAssets)
	router.GET("/assets/:id", security.Authorize("user"), h.GetAsset)
	router.DELETE("/assets/:id", security.Authorize("admin"), h.DeleteAsset)
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	asset, ok := h.assetFromRequest(c, &req)
	if !ok {
		return
	}

	created, err := h.Service.CreateAsset(asset)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	asset, ok := h.assetFromRequest(c, &req)
	if !ok {
		return
	}
	asset.ID = id
	asset.UpdatedAt = req.UpdatedAt

	updated, err := h.Service.UpdateAsset(asset)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	asset, ok := h.Service.GetAsset(id)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) GetAssets(c *gin.Context) {
	var query struct {
		ParentID *int64 `form:"parent_id"`
		Kind     string `form:"kind"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	assets := h.Service.GetAssets(func(a *models.Asset) bool {
		if query.ParentID != nil && (a.ParentID == nil || *a.ParentID != *query.ParentID) {
			return false
		}
		if query.Kind != "" && a.Kind.String() != query.Kind {
			return false
		}
		return true
	})

	c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) CountAssets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.Service.CountAssets(nil)})
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	if err := h.Service.DeleteAsset(id); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}

func (h *AssetHandler) assetFromRequest(c *gin.Context, req *AssetRequest) (*models.Asset, bool) {
	kind, err := metadata.NewAssetKind(req.Kind)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid asset kind",
			"details": err.Error(),
		})
		return nil, false
	}

	priority := metadata.PriorityMedium
	if req.Priority != "" {
		priority, err = metadata.NewPriority(req.Priority)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid asset priority",
				"details": err.Error(),
			})
			return nil, false
		}
	}

	return &models.Asset{
		Name:              req.Name,
		Description:       req.Description,
		Category:          req.Category,
		Kind:              kind,
		Online:            req.Online,
		Priority:          priority,
		Make:              req.Make,
		Model:             req.Model,
		Manufacturer:      req.Manufacturer,
		ParentID:          req.ParentID,
		StorageLocationID: req.StorageLocationID,
	}, true
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
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to process asset", "details": err.Error()})
	}
}
