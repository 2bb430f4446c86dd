package stocks

import (
	"fmt"

	"inventory/internal/registry"
	"inventory/pkg/apperrors"
	"inventory/pkg/auditlog"
	"inventory/pkg/models"
)

// StockService owns the stock collection. Stock records are dependents of
// both parts and storage locations: deleting either removes the stock, and
// renaming a location rewrites the denormalized StorageLocationName here.
type StockService struct {
	guard     *registry.Guard
	stocks    *registry.Collection[*models.Stock]
	parts     *registry.Collection[*models.Part]
	locations *registry.Collection[*models.StorageLocation]
	auditLog  *auditlog.Auditlog
}

func NewStockService(
	guard *registry.Guard,
	stocks *registry.Collection[*models.Stock],
	parts *registry.Collection[*models.Part],
	locations *registry.Collection[*models.StorageLocation],
	auditLog *auditlog.Auditlog,
) *StockService {
	return &StockService{
		guard:     guard,
		stocks:    stocks,
		parts:     parts,
		locations: locations,
		auditLog:  auditLog,
	}
}

// Collection exposes the underlying collection for cascade wiring.
func (s *StockService) Collection() *registry.Collection[*models.Stock] {
	return s.stocks
}

func (s *StockService) CreateStock(stock *models.Stock) (*models.Stock, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	if fieldErrors := s.validateStock(stock); len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError(fieldErrors)
	}

	s.applyLocationName(stock)
	created := s.stocks.Create(stock)

	go s.auditLog.Log(
		"create",
		map[string]interface{}{
			"owner_id":    created.OwnerID,
			"location_id": created.StorageLocationID,
			"amount":      created.Amount,
			"msg":         "Registered stock",
		},
		created,
	)

	return created, nil
}

func (s *StockService) UpdateStock(stock *models.Stock) (*models.Stock, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	before, ok := s.stocks.Get(stock.ID)
	if !ok {
		return nil, apperrors.NewNotFoundError(s.stocks.Name(), stock.ID)
	}
	if !stock.UpdatedAt.Equal(before.UpdatedAt) {
		return nil, apperrors.NewConcurrencyConflictError(s.stocks.Name(), stock.ID)
	}

	if fieldErrors := s.validateStock(stock); len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError(fieldErrors)
	}

	s.applyLocationName(stock)
	updated, err := s.stocks.Update(stock)
	if err != nil {
		return nil, err
	}

	go s.auditLog.Log(
		"update",
		map[string]interface{}{
			"amount": updated.Amount,
			"msg":    "Updated stock",
		},
		updated,
	)

	return updated, nil
}

func (s *StockService) DeleteStock(id int64) error {
	s.guard.Lock()
	defer s.guard.Unlock()

	stock, ok := s.stocks.Get(id)
	if !ok {
		return apperrors.NewNotFoundError(s.stocks.Name(), id)
	}
	if err := s.stocks.Delete([]*models.Stock{stock}); err != nil {
		return err
	}

	go s.auditLog.Log(
		"delete",
		map[string]interface{}{
			"owner_id": stock.OwnerID,
			"msg":      "Removed stock",
		},
		stock,
	)

	return nil
}

func (s *StockService) GetStock(id int64) (*models.Stock, bool) {
	s.guard.RLock()
	defer s.guard.RUnlock()
	return s.stocks.Get(id)
}

func (s *StockService) GetStocks(predicate func(*models.Stock) bool) []*models.Stock {
	s.guard.RLock()
	defer s.guard.RUnlock()
	return s.stocks.GetMatching(predicate)
}

func (s *StockService) CountStocks(predicate func(*models.Stock) bool) int {
	s.guard.RLock()
	defer s.guard.RUnlock()
	return s.stocks.Count(predicate)
}

// CascadePartDeleted removes every stock record owned by one of the
// deleted parts. Caller holds the write guard.
func (s *StockService) CascadePartDeleted(deleted []*models.Part) {
	for _, part := range deleted {
		ownerID := part.ID
		owned := s.stocks.GetMatching(func(st *models.Stock) bool {
			return st.OwnerID == ownerID
		})
		if len(owned) == 0 {
			continue
		}
		if err := s.stocks.Delete(owned); err != nil {
			s.auditLog.LogCascadeFailure(apperrors.NewCascadeFailureError(
				"parts", s.stocks.Name(),
				fmt.Errorf("delete stock owned by part %d: %w", ownerID, err),
			))
		}
	}
}

// CascadeLocationDeleted removes every stock record referencing one of the
// deleted storage locations. Caller holds the write guard.
func (s *StockService) CascadeLocationDeleted(deleted []*models.StorageLocation) {
	for _, location := range deleted {
		locationID := location.ID
		referencing := s.stocks.GetMatching(func(st *models.Stock) bool {
			return st.StorageLocationID == locationID
		})
		if len(referencing) == 0 {
			continue
		}
		if err := s.stocks.Delete(referencing); err != nil {
			s.auditLog.LogCascadeFailure(apperrors.NewCascadeFailureError(
				"storage_locations", s.stocks.Name(),
				fmt.Errorf("delete stock at location %d: %w", locationID, err),
			))
		}
	}
}

// CascadeLocationUpdated rewrites the denormalized location name on every
// stock record referencing a renamed storage location. Caller holds the
// write guard; the triggering update has committed.
func (s *StockService) CascadeLocationUpdated(before, after *models.StorageLocation) {
	if before.FriendlyName() == after.FriendlyName() {
		return
	}

	referencing := s.stocks.GetMatching(func(st *models.Stock) bool {
		return st.StorageLocationID == after.ID
	})
	for _, stock := range referencing {
		stock.StorageLocationName = after.FriendlyName()
		if _, err := s.stocks.Update(stock); err != nil {
			s.auditLog.LogCascadeFailure(apperrors.NewCascadeFailureError(
				"storage_locations", s.stocks.Name(),
				fmt.Errorf("rewrite location name on stock %d: %w", stock.ID, err),
			))
		}
	}
}

// validateStock accumulates every violated rule so the caller sees them
// all in a single response.
func (s *StockService) validateStock(stock *models.Stock) []apperrors.FieldError {
	var fieldErrors []apperrors.FieldError

	if stock.Amount < 0 {
		fieldErrors = append(fieldErrors, apperrors.FieldError{
			Field: "amount", Message: "amount must not be negative",
		})
	}

	if _, ok := s.parts.Get(stock.OwnerID); !ok {
		fieldErrors = append(fieldErrors, apperrors.FieldError{
			Field: "owner_id", Message: fmt.Sprintf("owning part %d does not exist", stock.OwnerID),
		})
	}

	if _, ok := s.locations.Get(stock.StorageLocationID); !ok {
		fieldErrors = append(fieldErrors, apperrors.FieldError{
			Field: "storage_location_id", Message: fmt.Sprintf("storage location %d does not exist", stock.StorageLocationID),
		})
	}

	if s.stocks.ExistsMatching(func(other *models.Stock) bool {
		return other.ID != stock.ID &&
			other.OwnerID == stock.OwnerID &&
			other.StorageLocationID == stock.StorageLocationID
	}) {
		fieldErrors = append(fieldErrors, apperrors.FieldError{
			Field: "storage_location_id", Message: "this part already has stock at this location",
		})
	}

	return fieldErrors
}

// applyLocationName refreshes the denormalized name from the authoritative
// location record; the caller-supplied value is never trusted.
func (s *StockService) applyLocationName(stock *models.Stock) {
	if location, ok := s.locations.Get(stock.StorageLocationID); ok {
		stock.StorageLocationName = location.FriendlyName()
	}
}
