package locations

import (
	"fmt"

	"inventory/internal/registry"
	"inventory/pkg/apperrors"
	"inventory/pkg/auditlog"
	"inventory/pkg/models"
)

// LocationService owns the storage-location collection. Locations are
// dependents of assets: deleting an asset removes its locations, and
// renaming a location rewrites the denormalized name on every stock record
// referencing it (both wired through collection listeners).
type LocationService struct {
	guard     *registry.Guard
	locations *registry.Collection[*models.StorageLocation]
	assets    *registry.Collection[*models.Asset]
	auditLog  *auditlog.Auditlog
}

func NewLocationService(
	guard *registry.Guard,
	locations *registry.Collection[*models.StorageLocation],
	assets *registry.Collection[*models.Asset],
	auditLog *auditlog.Auditlog,
) *LocationService {
	return &LocationService{
		guard:     guard,
		locations: locations,
		assets:    assets,
		auditLog:  auditLog,
	}
}

// Collection exposes the underlying collection for cascade wiring.
func (s *LocationService) Collection() *registry.Collection[*models.StorageLocation] {
	return s.locations
}

func (s *LocationService) CreateLocation(location *models.StorageLocation) (*models.StorageLocation, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	if fieldErrors := s.validateLocation(location); len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError(fieldErrors)
	}

	created := s.locations.Create(location)

	go s.auditLog.Log(
		"create",
		map[string]interface{}{
			"name":     created.FriendlyName(),
			"owner_id": created.OwnerID,
			"msg":      "Registered storage location",
		},
		created,
	)

	return created, nil
}

func (s *LocationService) UpdateLocation(location *models.StorageLocation) (*models.StorageLocation, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	before, ok := s.locations.Get(location.ID)
	if !ok {
		return nil, apperrors.NewNotFoundError(s.locations.Name(), location.ID)
	}
	if !location.UpdatedAt.Equal(before.UpdatedAt) {
		return nil, apperrors.NewConcurrencyConflictError(s.locations.Name(), location.ID)
	}

	if fieldErrors := s.validateLocation(location); len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError(fieldErrors)
	}

	updated, err := s.locations.Update(location)
	if err != nil {
		return nil, err
	}

	go s.auditLog.Log(
		"update",
		map[string]interface{}{
			"name": updated.FriendlyName(),
			"msg":  "Updated storage location",
		},
		updated,
	)

	return updated, nil
}

func (s *LocationService) DeleteLocation(id int64) error {
	s.guard.Lock()
	defer s.guard.Unlock()

	location, ok := s.locations.Get(id)
	if !ok {
		return apperrors.NewNotFoundError(s.locations.Name(), id)
	}
	if err := s.locations.Delete([]*models.StorageLocation{location}); err != nil {
		return err
	}

	go s.auditLog.Log(
		"delete",
		map[string]interface{}{
			"name": location.FriendlyName(),
			"msg":  "Removed storage location",
		},
		location,
	)

	return nil
}

func (s *LocationService) GetLocation(id int64) (*models.StorageLocation, bool) {
	s.guard.RLock()
	defer s.guard.RUnlock()
	return s.locations.Get(id)
}

func (s *LocationService) GetLocations(predicate func(*models.StorageLocation) bool) []*models.StorageLocation {
	s.guard.RLock()
	defer s.guard.RUnlock()
	return s.locations.GetMatching(predicate)
}

func (s *LocationService) CountLocations(predicate func(*models.StorageLocation) bool) int {
	s.guard.RLock()
	defer s.guard.RUnlock()
	return s.locations.Count(predicate)
}

// CascadeOwnerDeleted removes every location owned by one of the deleted
// assets. The caller already holds the write guard; the triggering delete
// has committed, so failures are logged as drift instead of propagated.
func (s *LocationService) CascadeOwnerDeleted(deleted []*models.Asset) {
	for _, asset := range deleted {
		ownerID := asset.ID
		owned := s.locations.GetMatching(func(l *models.StorageLocation) bool {
			return l.OwnerID == ownerID
		})
		if len(owned) == 0 {
			continue
		}
		if err := s.locations.Delete(owned); err != nil {
			s.auditLog.LogCascadeFailure(apperrors.NewCascadeFailureError(
				"assets", s.locations.Name(),
				fmt.Errorf("delete locations owned by asset %d: %w", ownerID, err),
			))
		}
	}
}

func (s *LocationService) validateLocation(location *models.StorageLocation) []apperrors.FieldError {
	var fieldErrors []apperrors.FieldError

	if location.LocationA == "" {
		fieldErrors = append(fieldErrors, apperrors.FieldError{
			Field: "location_a", Message: "location A is required",
		})
	}

	if _, ok := s.assets.Get(location.OwnerID); !ok {
		fieldErrors = append(fieldErrors, apperrors.FieldError{
			Field: "owner_id", Message: fmt.Sprintf("owning asset %d does not exist", location.OwnerID),
		})
	}

	// The whole (owner, A, B, C) tuple is the key; the violation is
	// reported on location A.
	if s.locations.ExistsMatching(func(other *models.StorageLocation) bool {
		return other.ID != location.ID &&
			other.OwnerID == location.OwnerID &&
			other.LocationA == location.LocationA &&
			other.LocationB == location.LocationB &&
			other.LocationC == location.LocationC
	}) {
		fieldErrors = append(fieldErrors, apperrors.FieldError{
			Field: "location_a", Message: "a storage location with these labels already exists for this asset",
		})
	}

	return fieldErrors
}
