package species

import (
	"fmt"
	"slices"
	"strings"
)

// Category is the growth habit of a bamboo species
type Category string

const (
	Clumping Category = "Clumping"
	Running  Category = "Running"
	Dwarf    Category = "Dwarf"
	Timber   Category = "Timber"
)

// Rarity describes how commonly a species is found in cultivation
type Rarity string

const (
	Common   Rarity = "Common"
	Uncommon Rarity = "Uncommon"
	Rare     Rarity = "Rare"
)

// Record represents a single bamboo species in the catalog
type Record struct {
	ID               string   `json:"id" yaml:"id" parquet:"id"`
	Name             string   `json:"name" yaml:"name" parquet:"name"`
	ScientificName   string   `json:"scientificName" yaml:"scientificName" parquet:"scientific_name"`
	Image            string   `json:"image" yaml:"image" parquet:"image"`
	Gallery          []string `json:"gallery" yaml:"gallery" parquet:"gallery,list"`
	Height           string   `json:"height" yaml:"height" parquet:"height"`
	Category         Category `json:"category" yaml:"category" parquet:"category"`
	Rarity           Rarity   `json:"rarity" yaml:"rarity" parquet:"rarity"`
	Origin           string   `json:"origin" yaml:"origin" parquet:"origin"`
	GrowthRate       string   `json:"growthRate" yaml:"growthRate" parquet:"growth_rate"`
	Sunlight         string   `json:"sunlight" yaml:"sunlight" parquet:"sunlight"`
	Water            string   `json:"water" yaml:"water" parquet:"water"`
	Temperature      string   `json:"temperature" yaml:"temperature" parquet:"temperature"`
	Description      string   `json:"description" yaml:"description" parquet:"description"`
	Uses             []string `json:"uses" yaml:"uses" parquet:"uses,list"`
	Characteristics  []string `json:"characteristics" yaml:"characteristics" parquet:"characteristics,list"`
	CareInstructions string   `json:"careInstructions" yaml:"careInstructions" parquet:"care_instructions"`
	BloomingPeriod   string   `json:"bloomingPeriod,omitempty" yaml:"bloomingPeriod,omitempty" parquet:"blooming_period,optional"`
	Propagation      string   `json:"propagation" yaml:"propagation" parquet:"propagation"`
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case Clumping, Running, Dwarf, Timber:
		return true
	}
	return false
}

// Valid reports whether r is one of the known rarities
func (r Rarity) Valid() bool {
	switch r {
	case Common, Uncommon, Rare:
		return true
	}
	return false
}

// ParseCategory matches s case-insensitively against the known categories
func ParseCategory(s string) (Category, error) {
	for _, c := range []Category{Clumping, Running, Dwarf, Timber} {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (expected Clumping, Running, Dwarf or Timber)", s)
}

// ParseRarity matches s case-insensitively against the known rarities
func ParseRarity(s string) (Rarity, error) {
	for _, r := range []Rarity{Common, Uncommon, Rare} {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown rarity %q (expected Common, Uncommon or Rare)", s)
}

// HasBloomingPeriod reports whether the optional blooming period is set
func (r Record) HasBloomingPeriod() bool {
	return r.BloomingPeriod != ""
}

// clone returns a copy that shares no slices with r
func (r Record) clone() Record {
	r.Gallery = slices.Clone(r.Gallery)
	r.Uses = slices.Clone(r.Uses)
	r.Characteristics = slices.Clone(r.Characteristics)
	return r
}
