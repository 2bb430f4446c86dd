package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"inventory/pkg/apperrors"
	"inventory/pkg/models"
)

func TestCreateAssignsIdentifiersAndTimestamps(t *testing.T) {
	collection := NewCollection[*models.Part]("parts")

	first := collection.Create(&models.Part{Name: "Bolt"})
	second := collection.Create(&models.Part{Name: "Washer"})

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
}

func TestGetMatchingPreservesInsertionOrder(t *testing.T) {
	collection := NewCollection[*models.Part]("parts")
	collection.Create(&models.Part{Name: "Bolt", Category: "fasteners"})
	collection.Create(&models.Part{Name: "Seal", Category: "seals"})
	collection.Create(&models.Part{Name: "Washer", Category: "fasteners"})

	fasteners := collection.GetMatching(func(p *models.Part) bool {
		return p.Category == "fasteners"
	})

	assert.Len(t, fasteners, 2)
	assert.Equal(t, "Bolt", fasteners[0].Name)
	assert.Equal(t, "Washer", fasteners[1].Name)
}

func TestGetReturnsCopies(t *testing.T) {
	collection := NewCollection[*models.Part]("parts")
	created := collection.Create(&models.Part{Name: "Bolt"})

	fetched, ok := collection.Get(created.ID)
	assert.True(t, ok)
	fetched.Name = "Mangled"

	again, _ := collection.Get(created.ID)
	assert.Equal(t, "Bolt", again.Name)
}

func TestUpdateUnknownIdentifier(t *testing.T) {
	collection := NewCollection[*models.Part]("parts")

	_, err := collection.Update(&models.Part{ID: 42, Name: "Ghost"})

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUpdateRejectsStaleToken(t *testing.T) {
	collection := NewCollection[*models.Part]("parts")
	created := collection.Create(&models.Part{Name: "Bolt"})

	stale := created.Clone()
	stale.UpdatedAt = created.UpdatedAt.Add(-time.Second)
	_, err := collection.Update(stale)

	var conflict *apperrors.ConcurrencyConflictError
	assert.ErrorAs(t, err, &conflict)

	stored, _ := collection.Get(created.ID)
	assert.Equal(t, "Bolt", stored.Name)
	assert.Equal(t, created.UpdatedAt, stored.UpdatedAt)
}

func TestUpdateAdvancesTokenStrictly(t *testing.T) {
	collection := NewCollection[*models.Part]("parts")
	// Freeze the clock so the strictly-greater rule has to kick in.
	now := time.Now().UTC()
	collection.nowFn = func() time.Time { return now }

	created := collection.Create(&models.Part{Name: "Bolt"})
	updated, err := collection.Update(created)

	assert.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateNotifiesListeners(t *testing.T) {
	collection := NewCollection[*models.Part]("parts")
	var gotBefore, gotAfter *models.Part
	collection.OnUpdated(func(before, after *models.Part) {
		gotBefore = before
		gotAfter = after
	})

	created := collection.Create(&models.Part{Name: "Bolt"})
	created.Name = "Hex Bolt"
	_, err := collection.Update(created)

	assert.NoError(t, err)
	assert.Equal(t, "Bolt", gotBefore.Name)
	assert.Equal(t, "Hex Bolt", gotAfter.Name)
}

func TestDeleteBatchIsAtomic(t *testing.T) {
	collection := NewCollection[*models.Part]("parts")
	kept := collection.Create(&models.Part{Name: "Bolt"})

	err := collection.Delete([]*models.Part{kept, {ID: 99}})

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	_, ok := collection.Get(kept.ID)
	assert.True(t, ok, "no record may be removed when any identifier is unknown")
}

func TestDeleteNotifiesListenersWithBatch(t *testing.T) {
	collection := NewCollection[*models.Part]("parts")
	first := collection.Create(&models.Part{Name: "Bolt"})
	second := collection.Create(&models.Part{Name: "Washer"})

	var deleted []*models.Part
	collection.OnDeleted(func(batch []*models.Part) {
		deleted = batch
	})

	err := collection.Delete([]*models.Part{first, second})

	assert.NoError(t, err)
	assert.Len(t, deleted, 2)
	assert.Equal(t, 0, collection.Count(nil))
}

func TestRestoreKeepsIdentifiers(t *testing.T) {
	collection := NewCollection[*models.Part]("parts")
	collection.Restore([]*models.Part{
		{ID: 7, Name: "Bolt"},
		{ID: 3, Name: "Washer"},
	})

	created := collection.Create(&models.Part{Name: "Seal"})

	assert.Equal(t, int64(8), created.ID)
	assert.Equal(t, 3, collection.Count(nil))
}
