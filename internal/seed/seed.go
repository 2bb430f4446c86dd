package seed

import (
	"fmt"

	"inventory/internal/core/container"
	"inventory/pkg/metadata"
	"inventory/pkg/models"
)

// Load fills the store with a small example site: a workshop area holding
// two storage locations, a machine group with equipment under it, and a
// couple of parts stocked at the workshop.
func Load(c *container.Container) error {
	workshop, err := c.AssetService.CreateAsset(&models.Asset{
		Name:        "Workshop",
		Description: "Main workshop floor",
		Kind:        metadata.KindArea,
		Priority:    metadata.PriorityMedium,
		Online:      true,
	})
	if err != nil {
		return fmt.Errorf("seed workshop: %w", err)
	}

	lineA, err := c.AssetService.CreateAsset(&models.Asset{
		Name:     "Line A",
		Kind:     metadata.KindGroup,
		Priority: metadata.PriorityHigh,
		ParentID: &workshop.ID,
	})
	if err != nil {
		return fmt.Errorf("seed line A: %w", err)
	}

	press, err := c.AssetService.CreateAsset(&models.Asset{
		Name:         "Hydraulic Press",
		Kind:         metadata.KindEquipment,
		Priority:     metadata.PriorityHigh,
		Online:       true,
		Make:         "HP-200",
		Manufacturer: "Acme Machining",
		ParentID:     &lineA.ID,
	})
	if err != nil {
		return fmt.Errorf("seed press: %w", err)
	}

	shelf, err := c.LocationService.CreateLocation(&models.StorageLocation{
		OwnerID:   workshop.ID,
		LocationA: "Rack 1",
		LocationB: "Shelf A",
	})
	if err != nil {
		return fmt.Errorf("seed shelf: %w", err)
	}

	bin, err := c.LocationService.CreateLocation(&models.StorageLocation{
		OwnerID:   workshop.ID,
		LocationA: "Rack 1",
		LocationB: "Shelf B",
		LocationC: "Bin 3",
	})
	if err != nil {
		return fmt.Errorf("seed bin: %w", err)
	}

	bolt, err := c.PartService.CreatePart(&models.Part{
		Name:     "Hex Bolt M8",
		Category: "fasteners",
	})
	if err != nil {
		return fmt.Errorf("seed bolt: %w", err)
	}

	seal, err := c.PartService.CreatePart(&models.Part{
		Name:     "Hydraulic Seal",
		Category: "seals",
		Make:     press.Make,
	})
	if err != nil {
		return fmt.Errorf("seed seal: %w", err)
	}

	if _, err := c.StockService.CreateStock(&models.Stock{
		OwnerID:           bolt.ID,
		StorageLocationID: shelf.ID,
		Amount:            250,
	}); err != nil {
		return fmt.Errorf("seed bolt stock: %w", err)
	}

	if _, err := c.StockService.CreateStock(&models.Stock{
		OwnerID:           seal.ID,
		StorageLocationID: bin.ID,
		Amount:            12,
	}); err != nil {
		return fmt.Errorf("seed seal stock: %w", err)
	}

	return nil
}
