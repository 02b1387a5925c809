package match

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"partscout/internal/domain"
)

// CategoryRule maps any of its keywords (lowercase substrings) to a category.
type CategoryRule struct {
	Category domain.Category `yaml:"category"`
	Keywords []string        `yaml:"keywords"`
}

// Vocabulary is the vertical-specific data the classifier matches against.
// Order is significant in every list: the first hit wins.
type Vocabulary struct {
	Brands     []string       `yaml:"brands"`
	Variants   []string       `yaml:"variants"`
	Categories []CategoryRule `yaml:"categories"`
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Brands: []string{
			"asus", "msi", "gigabyte", "asrock", "evga", "zotac", "sapphire",
			"powercolor", "xfx", "palit", "pny", "inno3d", "galax", "gainward",
			"biostar", "amd", "intel", "nvidia", "corsair", "g.skill", "kingston",
			"crucial", "samsung", "western digital", "seagate", "adata",
			"teamgroup", "patriot", "lexar", "nzxt", "cooler master", "noctua",
			"lian li", "be quiet", "seasonic", "thermaltake",
		},
		// Longer keywords come before their prefixes.
		Variants: []string{
			"suprim liquid x", "suprim x", "suprim", "gaming x trio", "gaming trio",
			"gaming x", "gaming oc", "ventus 3x", "ventus 2x", "ventus",
			"strix", "tuf", "proart", "dual",
			"aorus master", "aorus elite", "aorus", "eagle", "windforce",
			"amp extreme", "amp airo", "twin edge", "trinity", "phantom",
			"nitro+", "pulse", "red devil", "hellhound", "merc",
			"founders edition",
		},
		Categories: []CategoryRule{
			{Category: domain.CategoryCPU, Keywords: []string{"ryzen", "core i", "processor", "cpu"}},
			{Category: domain.CategoryGPU, Keywords: []string{"rtx", "radeon", "geforce", "gpu"}},
			{Category: domain.CategoryMotherboard, Keywords: []string{"motherboard"}},
			{Category: domain.CategoryRAM, Keywords: []string{"ram", "ddr"}},
			{Category: domain.CategoryStorage, Keywords: []string{"ssd", "hdd", "nvme"}},
		},
	}
}

// LoadVocabulary reads a YAML vocabulary from path. Sections missing from
// the file keep their defaults.
func LoadVocabulary(path string) (Vocabulary, error) {
	v := DefaultVocabulary()
	b, err := os.ReadFile(path)
	if err != nil {
		return v, fmt.Errorf("read vocabulary: %w", err)
	}
	var file Vocabulary
	if err := yaml.Unmarshal(b, &file); err != nil {
		return v, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	if len(file.Brands) > 0 {
		v.Brands = file.Brands
	}
	if len(file.Variants) > 0 {
		v.Variants = file.Variants
	}
	if len(file.Categories) > 0 {
		v.Categories = file.Categories
	}
	return v, nil
}
