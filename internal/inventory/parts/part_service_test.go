package parts

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

func newPartService() *PartService {
	return NewPartService(
		registry.NewGuard(),
		registry.NewCollection[*models.Part]("parts"),
		auditlog.NewAuditLog(zap.NewNop()),
	)
}

func TestCreatePartRequiresName(t *testing.T) {
	service := newPartService()

	_, err := service.CreatePart(&models.Part{Category: "fasteners"})

	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, "name", validation.Errors[0].Field)
}

func TestCreatePartRejectsDuplicateName(t *testing.T) {
	service := newPartService()

	_, err := service.CreatePart(&models.Part{Name: "Bolt"})
	assert.NoError(t, err)

	_, err = service.CreatePart(&models.Part{Name: "Bolt"})
	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, "name", validation.Errors[0].Field)
}

func TestUpdatePartAllowsKeepingOwnName(t *testing.T) {
	service := newPartService()
	created, err := service.CreatePart(&models.Part{Name: "Bolt"})
	assert.NoError(t, err)

	created.Category = "fasteners"
	updated, err := service.UpdatePart(created)

	assert.NoError(t, err)
	assert.Equal(t, "Bolt", updated.Name)
	assert.Equal(t, "fasteners", updated.Category)
}

func TestUpdatePartRejectsStaleToken(t *testing.T) {
	service := newPartService()
	created, err := service.CreatePart(&models.Part{Name: "Bolt"})
	assert.NoError(t, err)

	stale := created.Clone()
	stale.UpdatedAt = created.UpdatedAt.Add(-time.Second)
	_, err = service.UpdatePart(stale)

	var conflict *apperrors.ConcurrencyConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestDeletePart(t *testing.T) {
	service := newPartService()
	created, err := service.CreatePart(&models.Part{Name: "Bolt"})
	assert.NoError(t, err)

	assert.NoError(t, service.DeletePart(created.ID))
	assert.Equal(t, 0, service.CountParts(nil))

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, service.DeletePart(created.ID), &notFound)
}
