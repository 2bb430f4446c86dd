package stocks

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inventory/pkg/apperrors"
	"inventory/pkg/models"
	"inventory/pkg/security"
)

type StockHandler struct {
	Service *StockService
}

func NewStockHandler(service *StockService) *StockHandler {
	return &StockHandler{Service: service}
}

func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/stocks", security.Authorize("moderator"), h.CreateStock)
	router.PUT("/stocks/:id", security.Authorize("moderator"), h.UpdateStock)
	router.GET("/stocks", security.Authorize("user"), h.GetStocks)
	router.GET("/stocks/count", security.Authorize("user"), h.CountStocks)
	router.GET("/stocks/:id", security.Authorize("user"), h.GetStock)
	router.DELETE("/stocks/:id", security.Authorize("admin"), h.DeleteStock)
}

func (h *StockHandler) CreateStock(c *gin.Context) {
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	created, err := h.Service.CreateStock(&models.Stock{
		OwnerID:           req.OwnerID,
		StorageLocationID: req.StorageLocationID,
		Amount:            req.Amount,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *StockHandler) UpdateStock(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid stock ID"})
		return
	}

	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	updated, err := h.Service.UpdateStock(&models.Stock{
		ID:                id,
		OwnerID:           req.OwnerID,
		StorageLocationID: req.StorageLocationID,
		Amount:            req.Amount,
		UpdatedAt:         req.UpdatedAt,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *StockHandler) GetStock(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid stock ID"})
		return
	}

	stock, ok := h.Service.GetStock(id)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Stock not found"})
		return
	}

	c.JSON(http.StatusOK, stock)
}

func (h *StockHandler) GetStocks(c *gin.Context) {
	var query struct {
		OwnerID           *int64 `form:"owner_id"`
		StorageLocationID *int64 `form:"storage_location_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	stocks := h.Service.GetStocks(func(st *models.Stock) bool {
		if query.OwnerID != nil && st.OwnerID != *query.OwnerID {
			return false
		}
		if query.StorageLocationID != nil && st.StorageLocationID != *query.StorageLocationID {
			return false
		}
		return true
	})

	c.JSON(http.StatusOK, stocks)
}

func (h *StockHandler) CountStocks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.Service.CountStocks(nil)})
}

func (h *StockHandler) DeleteStock(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid stock ID"})
		return
	}

	if err := h.Service.DeleteStock(id); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stock deleted successfully"})
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
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to process stock", "details": err.Error()})
	}
}
