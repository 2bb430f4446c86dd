package metadata

import (
	"fmt"
	"strings"
)

type AssetKind string

const (
	KindEquipment AssetKind = "equipment"
	KindArea      AssetKind = "area"
	KindGroup     AssetKind = "group"
)

func (k AssetKind) IsValid() bool {
	switch k {
	case KindEquipment, KindArea, KindGroup:
		return true
	default:
		return false
	}
}

func NewAssetKind(value string) (AssetKind, error) {
	kind := AssetKind(strings.ToLower(strings.TrimSpace(value)))
	if !kind.IsValid() {
		return kind, fmt.Errorf(
			"value not valid, only valid values are: %s, %s, %s",
			KindEquipment, KindArea, KindGroup,
		)
	}

	return kind, nil
}

func (k AssetKind) String() string {
	return string(k)
}
