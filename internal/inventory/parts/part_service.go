package parts

import (
	"fmt"

	"inventory/internal/registry"
	"inventory/pkg/apperrors"
	"inventory/pkg/auditlog"
	"inventory/pkg/models"
)

// PartService owns the part catalog. Deleting a part cascades to the stock
// records it owns via the collection's delete listener.
type PartService struct {
	guard    *registry.Guard
	parts    *registry.Collection[*models.Part]
	auditLog *auditlog.Auditlog
}

func NewPartService(guard *registry.Guard, parts *registry.Collection[*models.Part], auditLog *auditlog.Auditlog) *PartService {
	return &PartService{
		guard:    guard,
		parts:    parts,
		auditLog: auditLog,
	}
}

// Collection exposes the underlying collection for cascade wiring.
func (s *PartService) Collection() *registry.Collection[*models.Part] {
	return s.parts
}

func (s *PartService) CreatePart(part *models.Part) (*models.Part, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	if fieldErrors := s.validatePart(part); len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError(fieldErrors)
	}

	created := s.parts.Create(part)

	go s.auditLog.Log(
		"create",
		map[string]interface{}{
			"name": created.Name,
			"msg":  "Registered part",
		},
		created,
	)

	return created, nil
}

func (s *PartService) UpdatePart(part *models.Part) (*models.Part, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	before, ok := s.parts.Get(part.ID)
	if !ok {
		return nil, apperrors.NewNotFoundError(s.parts.Name(), part.ID)
	}
	if !part.UpdatedAt.Equal(before.UpdatedAt) {
		return nil, apperrors.NewConcurrencyConflictError(s.parts.Name(), part.ID)
	}

	if fieldErrors := s.validatePart(part); len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError(fieldErrors)
	}

	updated, err := s.parts.Update(part)
	if err != nil {
		return nil, err
	}

	go s.auditLog.Log(
		"update",
		map[string]interface{}{
			"name": updated.Name,
			"msg":  "Updated part",
		},
		updated,
	)

	return updated, nil
}

func (s *PartService) DeletePart(id int64) error {
	s.guard.Lock()
	defer s.guard.Unlock()

	part, ok := s.parts.Get(id)
	if !ok {
		return apperrors.NewNotFoundError(s.parts.Name(), id)
	}
	if err := s.parts.Delete([]*models.Part{part}); err != nil {
		return err
	}

	go s.auditLog.Log(
		"delete",
		map[string]interface{}{
			"name": part.Name,
			"msg":  "Removed part",
		},
		part,
	)

	return nil
}

func (s *PartService) GetPart(id int64) (*models.Part, bool) {
	s.guard.RLock()
	defer s.guard.RUnlock()
	return s.parts.Get(id)
}

func (s *PartService) GetParts(predicate func(*models.Part) bool) []*models.Part {
	s.guard.RLock()
	defer s.guard.RUnlock()
	return s.parts.GetMatching(predicate)
}

func (s *PartService) CountParts(predicate func(*models.Part) bool) int {
	s.guard.RLock()
	defer s.guard.RUnlock()
	return s.parts.Count(predicate)
}

func (s *PartService) validatePart(part *models.Part) []apperrors.FieldError {
	var fieldErrors []apperrors.FieldError

	if part.Name == "" {
		fieldErrors = append(fieldErrors, apperrors.FieldError{
			Field: "name", Message: "name is required",
		})
	} else if s.parts.ExistsMatching(func(other *models.Part) bool {
		return other.Name == part.Name && other.ID != part.ID
	}) {
		fieldErrors = append(fieldErrors, apperrors.FieldError{
			Field: "name", Message: fmt.Sprintf("a part named %q already exists", part.Name),
		})
	}

	return fieldErrors
}
