package species

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
)

// Catalog is a fixed, read-only list of species records.
// It is safe for concurrent use since nothing mutates it after construction.
type Catalog struct {
	records []Record
	byID    map[string]int
}

// Filters narrows Filter results. Zero-valued fields impose no constraint.
type Filters struct {
	Category    Category `json:"category,omitempty" yaml:"category,omitempty"`
	Rarity      Rarity   `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Origin      string   `json:"origin,omitempty" yaml:"origin,omitempty"`
	SearchQuery string   `json:"searchQuery,omitempty" yaml:"searchQuery,omitempty"`
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := NewCatalog(builtin)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in species catalog: %v", err))
	}
	return c
})

// Default returns the catalog shipped with the binary
func Default() *Catalog {
	return defaultCatalog()
}

// reservedIDs name sub-resources of the species API and cannot be record ids
var reservedIDs = map[string]bool{"random": true, "stats": true}

// NewCatalog validates records and builds a catalog from them.
// The records are copied, so later changes to the argument do not leak in.
func NewCatalog(records []Record) (*Catalog, error) {
	c := &Catalog{
		records: make([]Record, 0, len(records)),
		byID:    make(map[string]int, len(records)),
	}

	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("record %d has an empty id", i)
		}
		if reservedIDs[r.ID] {
			return nil, fmt.Errorf("species id %q is reserved", r.ID)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate species id %q", r.ID)
		}
		if !r.Category.Valid() {
			return nil, fmt.Errorf("species %q has unknown category %q", r.ID, r.Category)
		}
		if !r.Rarity.Valid() {
			return nil, fmt.Errorf("species %q has unknown rarity %q", r.ID, r.Rarity)
		}
		c.byID[r.ID] = len(c.records)
		c.records = append(c.records, r.clone())
	}

	return c, nil
}

// Len returns the number of records in the catalog
func (c *Catalog) Len() int {
	return len(c.records)
}

// All returns every record in catalog order
func (c *Catalog) All() []Record {
	return c.collect(func(Record) bool { return true })
}

// ByID returns the record with the given id
func (c *Catalog) ByID(id string) (Record, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Record{}, false
	}
	return c.records[i].clone(), true
}

// ByName resolves a recognition label to a record by case-insensitive match
// on the common or scientific name.
func (c *Catalog) ByName(name string) (Record, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Record{}, false
	}
	for _, r := range c.records {
		if strings.EqualFold(r.Name, name) || strings.EqualFold(r.ScientificName, name) {
			return r.clone(), true
		}
	}
	return Record{}, false
}

func (c *Catalog) ByCategory(category Category) []Record {
	return c.collect(func(r Record) bool { return r.Category == category })
}

func (c *Catalog) ByRarity(rarity Rarity) []Record {
	return c.collect(func(r Record) bool { return r.Rarity == rarity })
}

// Search matches query case-insensitively against name, scientific name,
// category and origin.
func (c *Catalog) Search(query string) []Record {
	q := strings.ToLower(query)
	return c.collect(func(r Record) bool { return matchesBasic(r, q) })
}

// Filter returns the records satisfying every set field of f
func (c *Catalog) Filter(f Filters) []Record {
	q := strings.ToLower(f.SearchQuery)
	return c.collect(func(r Record) bool {
		if f.Category != "" && r.Category != f.Category {
			return false
		}
		if f.Rarity != "" && r.Rarity != f.Rarity {
			return false
		}
		if f.Origin != "" && r.Origin != f.Origin {
			return false
		}
		if q != "" && !matchesBasic(r, q) && !matchesExtended(r, q) {
			return false
		}
		return true
	})
}

// Random samples count records without replacement. Asking for more records
// than the catalog holds returns all of them in shuffled order.
func (c *Catalog) Random(count int) []Record {
	if count <= 0 {
		return []Record{}
	}
	shuffled := c.All()
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:min(count, len(shuffled))]
}

// Categories returns the distinct categories present, sorted
func (c *Catalog) Categories() []Category {
	return distinct(c.records, func(r Record) Category { return r.Category })
}

// Rarities returns the distinct rarities present, sorted
func (c *Catalog) Rarities() []Rarity {
	return distinct(c.records, func(r Record) Rarity { return r.Rarity })
}

// Origins returns the distinct origins present, sorted
func (c *Catalog) Origins() []string {
	return distinct(c.records, func(r Record) string { return r.Origin })
}

func (c *Catalog) CountByCategory() map[Category]int {
	return countBy(c.records, func(r Record) Category { return r.Category })
}

func (c *Catalog) CountByRarity() map[Rarity]int {
	return countBy(c.records, func(r Record) Rarity { return r.Rarity })
}

// Names returns the common names of every record in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.records))
	for _, r := range c.records {
		names = append(names, r.Name)
	}
	return names
}

func (c *Catalog) collect(keep func(Record) bool) []Record {
	out := []Record{}
	for _, r := range c.records {
		if keep(r) {
			out = append(out, r.clone())
		}
	}
	return out
}

// q must already be lowercased
func matchesBasic(r Record, q string) bool {
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.ScientificName), q) ||
		strings.Contains(strings.ToLower(string(r.Category)), q) ||
		strings.Contains(strings.ToLower(r.Origin), q)
}

func matchesExtended(r Record, q string) bool {
	if strings.Contains(strings.ToLower(r.Description), q) {
		return true
	}
	for _, s := range r.Uses {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	for _, s := range r.Characteristics {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

func distinct[T ~string](records []Record, key func(Record) T) []T {
	seen := make(map[T]bool)
	out := []T{}
	for _, r := range records {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

func countBy[T comparable](records []Record, key func(Record) T) map[T]int {
	counts := make(map[T]int)
	for _, r := range records {
		counts[key(r)]++
	}
	return counts
}
