package container

import (
	"time"

	"go.uber.org/zap"

	"inventory/internal/inventory/assets"
	"inventory/internal/ratelimit"
	"inventory/internal/inventory/locations"
	"inventory/internal/inventory/parts"
	"inventory/internal/inventory/stocks"
	"inventory/internal/registry"
	"inventory/pkg/auditlog"
	"inventory/pkg/models"
	"inventory/pkg/security"
)

type Container struct {
	Guard     *registry.Guard
	Assets    *registry.Collection[*models.Asset]
	Locations *registry.Collection[*models.StorageLocation]
	Parts     *registry.Collection[*models.Part]
	Stocks    *registry.Collection[*models.Stock]

	AuditLog        *auditlog.Auditlog
	AssetService    *assets.AssetService
	LocationService *locations.LocationService
	PartService     *parts.PartService
	StockService    *stocks.StockService

	LoginLimiter    *ratelimit.Limiter
	LoginHandler    *security.LoginHandler
	AssetHandler    *assets.AssetHandler
	LocationHandler *locations.LocationHandler
	PartHandler     *parts.PartHandler
	StockHandler    *stocks.StockHandler
}

// NewAppContainer builds the collections, services and handlers, and wires
// the cascade graph. The wiring is static and one-way: owning collections
// notify their dependents, never the other way around.
func NewAppContainer(logger *zap.Logger) *Container {
	guard := registry.NewGuard()

	assetCollection := registry.NewCollection[*models.Asset]("assets")
	locationCollection := registry.NewCollection[*models.StorageLocation]("storage_locations")
	partCollection := registry.NewCollection[*models.Part]("parts")
	stockCollection := registry.NewCollection[*models.Stock]("stocks")

	auditLog := auditlog.NewAuditLog(logger)

	assetService := assets.NewAssetService(guard, assetCollection, auditLog)
	locationService := locations.NewLocationService(guard, locationCollection, assetCollection, auditLog)
	partService := parts.NewPartService(guard, partCollection, auditLog)
	stockService := stocks.NewStockService(guard, stockCollection, partCollection, locationCollection, auditLog)

	// Cascade graph: assets -> storage locations -> stocks, parts -> stocks.
	// Listeners run synchronously under the write guard held by the
	// triggering service.
	assetCollection.OnDeleted(locationService.CascadeOwnerDeleted)
	locationCollection.OnDeleted(stockService.CascadeLocationDeleted)
	locationCollection.OnUpdated(stockService.CascadeLocationUpdated)
	partCollection.OnDeleted(stockService.CascadePartDeleted)

	// 10 login attempts per client per 5 minutes.
	loginLimiter := ratelimit.New(10, 5*time.Minute)

	return &Container{
		Guard:     guard,
		Assets:    assetCollection,
		Locations: locationCollection,
		Parts:     partCollection,
		Stocks:    stockCollection,

		AuditLog:        auditLog,
		AssetService:    assetService,
		LocationService: locationService,
		PartService:     partService,
		StockService:    stockService,

		LoginLimiter:    loginLimiter,
		LoginHandler:    security.NewLoginHandler(loginLimiter),
		AssetHandler:    assets.NewAssetHandler(assetService),
		LocationHandler: locations.NewLocationHandler(locationService),
		PartHandler:     parts.NewPartHandler(partService),
		StockHandler:    stocks.NewStockHandler(stockService),
	}
}
