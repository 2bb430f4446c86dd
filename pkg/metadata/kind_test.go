package metadata

import (
	"testing"
)

// TestAssetKindIsValid tests the IsValid method of the AssetKind type.
func TestAssetKindIsValid(t *testing.T) {
	tests := []struct {
		name     string
		kind     AssetKind
		expected bool
	}{
		{"equipment kind", KindEquipment, true},
		{"area kind", KindArea, true},
		{"group kind", KindGroup, true},
		{"unknown kind", AssetKind("rack"), false},
		{"empty kind", AssetKind(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewAssetKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid equipment", "equipment", false},
		{"valid uppercase AREA", "AREA", false},
		{"valid group with spaces", "  group ", false},
		{"invalid unknown", "shelf", true},
		{"invalid empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAssetKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewAssetKind() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil && !got.IsValid() {
				t.Errorf("NewAssetKind() = %v is not valid", got)
			}
		})
	}
}

func TestNewPriority(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid low", "low", false},
		{"valid uppercase HIGH", "HIGH", false},
		{"valid medium with spaces", " medium ", false},
		{"invalid urgent", "urgent", true},
		{"invalid empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPriority(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewPriority() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
