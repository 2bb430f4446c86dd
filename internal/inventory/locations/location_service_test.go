package locations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"inventory/internal/inventory/stocks"
	"inventory/internal/registry"
	"inventory/pkg/apperrors"
	"inventory/pkg/auditlog"
	"inventory/pkg/models"
)

type locationFixture struct {
	service *LocationService
	assets  *registry.Collection[*models.Asset]
	parts   *registry.Collection[*models.Part]
	stocks  *registry.Collection[*models.Stock]
}

func newLocationFixture() *locationFixture {
	guard := registry.NewGuard()
	auditLog := auditlog.NewAuditLog(zap.NewNop())

	assetCollection := registry.NewCollection[*models.Asset]("assets")
	locationCollection := registry.NewCollection[*models.StorageLocation]("storage_locations")
	partCollection := registry.NewCollection[*models.Part]("parts")
	stockCollection := registry.NewCollection[*models.Stock]("stocks")

	locationService := NewLocationService(guard, locationCollection, assetCollection, auditLog)
	stockService := stocks.NewStockService(guard, stockCollection, partCollection, locationCollection, auditLog)

	locationCollection.OnDeleted(stockService.CascadeLocationDeleted)
	locationCollection.OnUpdated(stockService.CascadeLocationUpdated)

	return &locationFixture{
		service: locationService,
		assets:  assetCollection,
		parts:   partCollection,
		stocks:  stockCollection,
	}
}

func TestCreateLocationRequiresExistingOwner(t *testing.T) {
	f := newLocationFixture()

	_, err := f.service.CreateLocation(&models.StorageLocation{OwnerID: 99, LocationA: "Rack 1"})

	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Len(t, validation.Errors, 1)
	assert.Equal(t, "owner_id", validation.Errors[0].Field)
}

func TestCreateLocationRejectsDuplicateTuple(t *testing.T) {
	f := newLocationFixture()
	owner := f.assets.Create(&models.Asset{Name: "Workshop"})

	_, err := f.service.CreateLocation(&models.StorageLocation{
		OwnerID: owner.ID, LocationA: "Rack 1", LocationB: "Shelf A",
	})
	assert.NoError(t, err)

	_, err = f.service.CreateLocation(&models.StorageLocation{
		OwnerID: owner.ID, LocationA: "Rack 1", LocationB: "Shelf A",
	})
	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, "location_a", validation.Errors[0].Field)

	// Same labels under a different owner are a different place.
	other := f.assets.Create(&models.Asset{Name: "Annex"})
	_, err = f.service.CreateLocation(&models.StorageLocation{
		OwnerID: other.ID, LocationA: "Rack 1", LocationB: "Shelf A",
	})
	assert.NoError(t, err)
}

func TestUpdateLocationRejectsStaleToken(t *testing.T) {
	f := newLocationFixture()
	owner := f.assets.Create(&models.Asset{Name: "Workshop"})
	created, err := f.service.CreateLocation(&models.StorageLocation{OwnerID: owner.ID, LocationA: "Rack 1"})
	assert.NoError(t, err)

	stale := created.Clone()
	stale.UpdatedAt = created.UpdatedAt.Add(-time.Second)
	stale.LocationA = "Rack 2"
	_, err = f.service.UpdateLocation(stale)

	var conflict *apperrors.ConcurrencyConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestRenameLocationRewritesStockNames(t *testing.T) {
	f := newLocationFixture()
	owner := f.assets.Create(&models.Asset{Name: "Workshop"})
	part := f.parts.Create(&models.Part{Name: "Bolt"})

	created, err := f.service.CreateLocation(&models.StorageLocation{
		OwnerID: owner.ID, LocationA: "Rack 1", LocationB: "Shelf A",
	})
	assert.NoError(t, err)

	stock := f.stocks.Create(&models.Stock{
		OwnerID:             part.ID,
		StorageLocationID:   created.ID,
		StorageLocationName: created.FriendlyName(),
		Amount:              25,
	})

	renamed := created.Clone()
	renamed.LocationB = "Shelf B"
	_, err = f.service.UpdateLocation(renamed)
	assert.NoError(t, err)

	stockAfter, _ := f.stocks.Get(stock.ID)
	assert.Equal(t, "Rack 1-Shelf B", stockAfter.StorageLocationName)
	assert.Equal(t, float64(25), stockAfter.Amount, "the rewrite touches only the denormalized name")
}

func TestDeleteLocationRemovesReferencingStock(t *testing.T) {
	f := newLocationFixture()
	owner := f.assets.Create(&models.Asset{Name: "Workshop"})
	part := f.parts.Create(&models.Part{Name: "Bolt"})

	doomed, err := f.service.CreateLocation(&models.StorageLocation{OwnerID: owner.ID, LocationA: "Rack 1"})
	assert.NoError(t, err)
	kept, err := f.service.CreateLocation(&models.StorageLocation{OwnerID: owner.ID, LocationA: "Rack 2"})
	assert.NoError(t, err)

	f.stocks.Create(&models.Stock{OwnerID: part.ID, StorageLocationID: doomed.ID, Amount: 5})
	survivor := f.stocks.Create(&models.Stock{OwnerID: part.ID, StorageLocationID: kept.ID, Amount: 7})

	err = f.service.DeleteLocation(doomed.ID)
	assert.NoError(t, err)

	assert.Equal(t, 1, f.stocks.Count(nil))
	_, ok := f.stocks.Get(survivor.ID)
	assert.True(t, ok)
}

func TestFriendlyNameSkipsEmptyLabels(t *testing.T) {
	location := &models.StorageLocation{LocationA: "Rack 1", LocationC: "Bin 3"}

	assert.Equal(t, "Rack 1-Bin 3", location.FriendlyName())
}
