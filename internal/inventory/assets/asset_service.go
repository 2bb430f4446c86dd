package assets

import (
	"fmt"

	"inventory/internal/registry"
	"inventory/pkg/apperrors"
	"inventory/pkg/auditlog"
	"inventory/pkg/metadata"
	"inventory/pkg/models"
)

// AssetService owns the asset collection. Besides plain CRUD it maintains
// the denormalized parent path for the whole asset forest: whenever a name
// or parent changes, every descendant's cached path is repaired before the
// write is considered complete.
type AssetService struct {
	guard    *registry.Guard
	assets   *registry.Collection[*models.Asset]
	auditLog *auditlog.Auditlog
}

func NewAssetService(guard *registry.Guard, assets *registry.Collection[*models.Asset], auditLog *auditlog.Auditlog) *AssetService {
	return &AssetService{
		guard:    guard,
		assets:   assets,
		auditLog: auditLog,
	}
}

// Collection exposes the underlying collection for cascade wiring.
func (s *AssetService) Collection() *registry.Collection[*models.Asset] {
	return s.assets
}

func (s *AssetService) CreateAsset(asset *models.Asset) (*models.Asset, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	applyDefaultPriority(asset)
	if fieldErrors := s.validateAsset(asset); len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError(fieldErrors)
	}

	if err := s.applyParentPath(asset); err != nil {
		return nil, err
	}

	created := s.assets.Create(asset)

	go s.auditLog.Log(
		"create",
		map[string]interface{}{
			"name": created.Name,
			"kind": created.Kind.String(),
			"msg":  "Registered asset",
		},
		created,
	)

	return created, nil
}

func (s *AssetService) UpdateAsset(asset *models.Asset) (*models.Asset, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	before, ok := s.assets.Get(asset.ID)
	if !ok {
		return nil, apperrors.NewNotFoundError(s.assets.Name(), asset.ID)
	}
	if !asset.UpdatedAt.Equal(before.UpdatedAt) {
		return nil, apperrors.NewConcurrencyConflictError(s.assets.Name(), asset.ID)
	}

	applyDefaultPriority(asset)
	if fieldErrors := s.validateAsset(asset); len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError(fieldErrors)
	}

	if err := s.applyParentPath(asset); err != nil {
		return nil, err
	}

	updated, err := s.assets.Update(asset)
	if err != nil {
		return nil, err
	}

	if before.Name != updated.Name || !sameParent(before.ParentID, updated.ParentID) {
		s.repairDescendantPaths(updated)
	}

	go s.auditLog.Log(
		"update",
		map[string]interface{}{
			"name": updated.Name,
			"msg":  "Updated asset",
		},
		updated,
	)

	return updated, nil
}

// DeleteAsset removes the asset and its entire subtree. Registered delete
// listeners receive the whole batch, which is where the storage-location
// cascade (and transitively the stock cascade) hangs off.
func (s *AssetService) DeleteAsset(id int64) error {
	s.guard.Lock()
	defer s.guard.Unlock()

	root, ok := s.assets.Get(id)
	if !ok {
		return apperrors.NewNotFoundError(s.assets.Name(), id)
	}

	subtree := s.collectSubtree(root)
	if err := s.assets.Delete(subtree); err != nil {
		return err
	}

	go s.auditLog.Log(
		"delete",
		map[string]interface{}{
			"name":    root.Name,
			"removed": len(subtree),
			"msg":     "Removed asset subtree",
		},
		root,
	)

	return nil
}

func (s *AssetService) GetAsset(id int64) (*models.Asset, bool) {
	s.guard.RLock()
	defer s.guard.RUnlock()
	return s.assets.Get(id)
}

func (s *AssetService) GetAssets(predicate func(*models.Asset) bool) []*models.Asset {
	s.guard.RLock()
	defer s.guard.RUnlock()
	return s.assets.GetMatching(predicate)
}

func (s *AssetService) CountAssets(predicate func(*models.Asset) bool) int {
	s.guard.RLock()
	defer s.guard.RUnlock()
	return s.assets.Count(predicate)
}

// validateAsset accumulates every violated rule; callers get the full list
// in one round trip.
func (s *AssetService) validateAsset(asset *models.Asset) []apperrors.FieldError {
	var fieldErrors []apperrors.FieldError

	if asset.Name == "" {
		fieldErrors = append(fieldErrors, apperrors.FieldError{
			Field: "name", Message: "name is required",
		})
	} else if s.assets.ExistsMatching(func(other *models.Asset) bool {
		return other.Name == asset.Name && other.ID != asset.ID
	}) {
		fieldErrors = append(fieldErrors, apperrors.FieldError{
			Field: "name", Message: fmt.Sprintf("an asset named %q already exists", asset.Name),
		})
	}

	if !asset.Kind.IsValid() {
		fieldErrors = append(fieldErrors, apperrors.FieldError{
			Field: "kind", Message: fmt.Sprintf("unknown asset kind %q", asset.Kind),
		})
	}

	if !asset.Priority.IsValid() {
		fieldErrors = append(fieldErrors, apperrors.FieldError{
			Field: "priority", Message: fmt.Sprintf("unknown priority %q", asset.Priority),
		})
	}

	if asset.ParentID != nil {
		if _, ok := s.assets.Get(*asset.ParentID); !ok {
			fieldErrors = append(fieldErrors, apperrors.FieldError{
				Field: "parent_id", Message: fmt.Sprintf("parent asset %d does not exist", *asset.ParentID),
			})
		} else if asset.ID != 0 && s.createsCycle(asset.ID, *asset.ParentID) {
			fieldErrors = append(fieldErrors, apperrors.FieldError{
				Field: "parent_id", Message: "an asset cannot be moved under itself or one of its descendants",
			})
		}
	}

	return fieldErrors
}

// createsCycle walks the ancestor chain upwards from the proposed parent.
// The walk terminates because the committed state is still a forest.
func (s *AssetService) createsCycle(assetID, parentID int64) bool {
	current := parentID
	for {
		if current == assetID {
			return true
		}
		parent, ok := s.assets.Get(current)
		if !ok || parent.ParentID == nil {
			return false
		}
		current = *parent.ParentID
	}
}

// applyParentPath recomputes the cached parent path from the authoritative
// parent record. The caller-supplied value is never trusted.
func (s *AssetService) applyParentPath(asset *models.Asset) error {
	if asset.ParentID == nil {
		asset.ParentPath = nil
		return nil
	}
	parent, ok := s.assets.Get(*asset.ParentID)
	if !ok {
		return apperrors.NewNotFoundError(s.assets.Name(), *asset.ParentID)
	}
	path := parent.ChildPath()
	asset.ParentPath = &path
	return nil
}

// repairDescendantPaths walks the subtree below the given node with a work
// queue and rewrites each descendant's cached parent path. Each repair goes
// through the ordinary update path so downstream listeners still fire; a
// failed repair is consistency drift and is logged, not propagated.
func (s *AssetService) repairDescendantPaths(node *models.Asset) {
	type repairItem struct {
		parentID  int64
		childPath string
	}

	queue := []repairItem{{parentID: node.ID, childPath: node.ChildPath()}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		children := s.assets.GetMatching(func(a *models.Asset) bool {
			return a.ParentID != nil && *a.ParentID == item.parentID
		})
		for _, child := range children {
			path := item.childPath
			child.ParentPath = &path
			committed, err := s.assets.Update(child)
			if err != nil {
				s.auditLog.LogCascadeFailure(apperrors.NewCascadeFailureError(
					s.assets.Name(), s.assets.Name(),
					fmt.Errorf("repair parent path of asset %d: %w", child.ID, err),
				))
				continue
			}
			queue = append(queue, repairItem{parentID: committed.ID, childPath: committed.ChildPath()})
		}
	}
}

// collectSubtree gathers the node and all transitive descendants,
// level by level.
func (s *AssetService) collectSubtree(root *models.Asset) []*models.Asset {
	subtree := []*models.Asset{root}
	queue := []int64{root.ID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		children := s.assets.GetMatching(func(a *models.Asset) bool {
			return a.ParentID != nil && *a.ParentID == id
		})
		for _, child := range children {
			subtree = append(subtree, child)
			queue = append(queue, child.ID)
		}
	}
	return subtree
}

func applyDefaultPriority(asset *models.Asset) {
	if asset.Priority == "" {
		asset.Priority = metadata.PriorityMedium
	}
}

func sameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
