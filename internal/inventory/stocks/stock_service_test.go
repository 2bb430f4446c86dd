package stocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"inventory/internal/registry"
	"inventory/pkg/apperrors"
	"inventory/pkg/auditlog"
	"inventory/pkg/models"
)

type stockFixture struct {
	service   *StockService
	parts     *registry.Collection[*models.Part]
	locations *registry.Collection[*models.StorageLocation]
}

func newStockFixture() *stockFixture {
	guard := registry.NewGuard()
	auditLog := auditlog.NewAuditLog(zap.NewNop())

	partCollection := registry.NewCollection[*models.Part]("parts")
	locationCollection := registry.NewCollection[*models.StorageLocation]("storage_locations")
	stockCollection := registry.NewCollection[*models.Stock]("stocks")

	service := NewStockService(guard, stockCollection, partCollection, locationCollection, auditLog)
	partCollection.OnDeleted(service.CascadePartDeleted)
	locationCollection.OnDeleted(service.CascadeLocationDeleted)
	locationCollection.OnUpdated(service.CascadeLocationUpdated)

	return &stockFixture{
		service:   service,
		parts:     partCollection,
		locations: locationCollection,
	}
}

func (f *stockFixture) seedRefs() (*models.Part, *models.StorageLocation) {
	part := f.parts.Create(&models.Part{Name: "Bolt"})
	location := f.locations.Create(&models.StorageLocation{OwnerID: 1, LocationA: "Rack 1", LocationB: "Shelf A"})
	return part, location
}

func TestCreateStockFillsDenormalizedName(t *testing.T) {
	f := newStockFixture()
	part, location := f.seedRefs()

	created, err := f.service.CreateStock(&models.Stock{
		OwnerID:             part.ID,
		StorageLocationID:   location.ID,
		StorageLocationName: "Caller Lies",
		Amount:              10,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Rack 1-Shelf A", created.StorageLocationName)
}

func TestCreateStockReportsBothMissingReferences(t *testing.T) {
	f := newStockFixture()

	_, err := f.service.CreateStock(&models.Stock{OwnerID: 5, StorageLocationID: 9, Amount: 1})

	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Len(t, validation.Errors, 2)

	fields := make([]string, 0, len(validation.Errors))
	for _, fe := range validation.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"owner_id", "storage_location_id"}, fields)
}

func TestCreateStockRejectsNegativeAmount(t *testing.T) {
	f := newStockFixture()
	part, location := f.seedRefs()

	_, err := f.service.CreateStock(&models.Stock{
		OwnerID: part.ID, StorageLocationID: location.ID, Amount: -1,
	})

	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, "amount", validation.Errors[0].Field)
}

func TestCreateStockRejectsDuplicatePlacement(t *testing.T) {
	f := newStockFixture()
	part, location := f.seedRefs()

	_, err := f.service.CreateStock(&models.Stock{OwnerID: part.ID, StorageLocationID: location.ID, Amount: 1})
	assert.NoError(t, err)

	_, err = f.service.CreateStock(&models.Stock{OwnerID: part.ID, StorageLocationID: location.ID, Amount: 2})
	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, "storage_location_id", validation.Errors[0].Field)
}

func TestUpdateStockRejectsStaleToken(t *testing.T) {
	f := newStockFixture()
	part, location := f.seedRefs()
	created, err := f.service.CreateStock(&models.Stock{OwnerID: part.ID, StorageLocationID: location.ID, Amount: 3})
	assert.NoError(t, err)

	stale := created.Clone()
	stale.UpdatedAt = created.UpdatedAt.Add(-time.Second)
	stale.Amount = 4
	_, err = f.service.UpdateStock(stale)

	var conflict *apperrors.ConcurrencyConflictError
	assert.ErrorAs(t, err, &conflict)

	stored, _ := f.service.GetStock(created.ID)
	assert.Equal(t, float64(3), stored.Amount)
}

func TestPartDeleteCascadesToStock(t *testing.T) {
	f := newStockFixture()
	part, location := f.seedRefs()
	otherPart := f.parts.Create(&models.Part{Name: "Washer"})

	_, err := f.service.CreateStock(&models.Stock{OwnerID: part.ID, StorageLocationID: location.ID, Amount: 1})
	assert.NoError(t, err)
	survivor, err := f.service.CreateStock(&models.Stock{OwnerID: otherPart.ID, StorageLocationID: location.ID, Amount: 2})
	assert.NoError(t, err)

	err = f.parts.Delete([]*models.Part{part})
	assert.NoError(t, err)

	assert.Equal(t, 1, f.service.CountStocks(nil))
	_, ok := f.service.GetStock(survivor.ID)
	assert.True(t, ok)
}

func TestLocationDeleteCascadesToStock(t *testing.T) {
	f := newStockFixture()
	part, location := f.seedRefs()

	_, err := f.service.CreateStock(&models.Stock{OwnerID: part.ID, StorageLocationID: location.ID, Amount: 1})
	assert.NoError(t, err)

	err = f.locations.Delete([]*models.StorageLocation{location})
	assert.NoError(t, err)

	assert.Equal(t, 0, f.service.CountStocks(nil))
}

func TestLocationUpdateWithoutRenameLeavesStockAlone(t *testing.T) {
	f := newStockFixture()
	part, location := f.seedRefs()

	created, err := f.service.CreateStock(&models.Stock{OwnerID: part.ID, StorageLocationID: location.ID, Amount: 1})
	assert.NoError(t, err)

	// Touch the location without changing any label.
	_, err = f.locations.Update(location)
	assert.NoError(t, err)

	after, _ := f.service.GetStock(created.ID)
	assert.Equal(t, created.UpdatedAt, after.UpdatedAt, "no rewrite means no token churn")
}
