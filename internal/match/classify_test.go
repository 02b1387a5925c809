package match

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partscout/internal/domain"
)

func TestClassifier_Manufacturer(t *testing.T) {
	c := NewClassifier(DefaultVocabulary())
	tests := []struct {
		input string
		want  string
	}{
		{"MSI GeForce RTX 4090", "msi"},
		{"Sapphire AMD Radeon RX 7800 XT", "sapphire"},
		{"GeForce RTX 4070 Windforce by Gigabyte", "gigabyte"},
		{"  ASUS ROG STRIX RTX 4090", "asus"},
		{"The Intelligent Cable", ""},
		{"Generic Cable", ""},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Manufacturer(tc.input))
		})
	}
}

func TestClassifier_Category(t *testing.T) {
	c := NewClassifier(DefaultVocabulary())
	tests := []struct {
		input string
		want  domain.Category
	}{
		{"AMD Ryzen 7 7800X3D", domain.CategoryCPU},
		{"Intel Core i5-13400F", domain.CategoryCPU},
		{"MSI RTX 4070", domain.CategoryGPU},
		{"Sapphire Radeon RX 7800 XT", domain.CategoryGPU},
		{"ASUS TUF B650 Motherboard", domain.CategoryMotherboard},
		{"Corsair Vengeance 32GB DDR5", domain.CategoryRAM},
		{"Samsung 990 PRO 2TB NVMe SSD", domain.CategoryStorage},
		{"Lian Li O11 Case", domain.CategoryOther},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Category(tc.input))
		})
	}
}

func TestClassifier_Variant(t *testing.T) {
	c := NewClassifier(DefaultVocabulary())
	tests := []struct {
		input string
		want  string
	}{
		{"ASUS ROG STRIX RTX 4090", "strix"},
		{"MSI SUPRIM X RTX 4090", "suprim x"},
		{"MSI GeForce RTX 4090 Gaming Trio 24G", "gaming trio 24g"},
		{"Gigabyte RTX 4070 (GV-N4070)", ""},
		{"Generic Cable", ""},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Variant(tc.input))
		})
	}
}

func TestPartCode(t *testing.T) {
	assert.Equal(t, "90yv0ie0-m0aa00", PartCode("ASUS TUF RTX 4070 (90YV0IE0-M0AA00)"))
	assert.Equal(t, "", PartCode("ASUS TUF RTX 4070"))
	assert.Equal(t, "", PartCode("ASUS TUF RTX 4070 ( )"))
}

func TestLoadVocabulary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("brands:\n  - Acme\n  - MSI\n"), 0o644))

	v, err := LoadVocabulary(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme", "MSI"}, v.Brands)
	assert.Equal(t, DefaultVocabulary().Variants, v.Variants)

	c := NewClassifier(v)
	assert.Equal(t, "acme", c.Manufacturer("ACME Widget 3000"))
	assert.Equal(t, "", c.Manufacturer("ASUS RTX 4070"))

	_, err = LoadVocabulary(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
