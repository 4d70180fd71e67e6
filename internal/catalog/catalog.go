// Package catalog defines the static building catalog: the immutable
// definitions every placed building instance is stamped from.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category groups definitions in the construction menu.
type Category string

const (
	Residential   Category = "residential"
	Commercial    Category = "commercial"
	Industrial    Category = "industrial"
	Entertainment Category = "entertainment"
	Decoration    Category = "decoration"
)

// DefaultMaxLevel is used when a definition does not set MaxLevel.
const DefaultMaxLevel = 5

// Definition is one immutable catalog entry.
//
// Population > 0 supplies housing capacity; Population < 0 consumes that
// many workers; 0 is neutral. Income is coins credited per income tick at
// level 1.
type Definition struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Category Category `yaml:"category" json:"category"`
	Price    int64    `yaml:"price" json:"price"`
	Width    int      `yaml:"width" json:"width"`
	Height   int      `yaml:"height" json:"height"`

	Population int   `yaml:"population" json:"population"`
	Income     int64 `yaml:"income" json:"income"`
	XP         int64 `yaml:"xp" json:"xp"`

	MaxLevel int `yaml:"max_level,omitempty" json:"max_level"`

	// Night lighting hints consumed by the renderer.
	LightRadius int    `yaml:"light_radius,omitempty" json:"light_radius,omitempty"`
	LightColor  string `yaml:"light_color,omitempty" json:"light_color,omitempty"`
}

// EffectiveMaxLevel returns MaxLevel, or the default when unset.
func (d *Definition) EffectiveMaxLevel() int {
	if d.MaxLevel <= 0 {
		return DefaultMaxLevel
	}
	return d.MaxLevel
}

// RequiresWorkers reports whether the building consumes free workers.
func (d *Definition) RequiresWorkers() bool {
	return d.Population < 0
}

// Catalog is an id-keyed, insertion-ordered set of definitions.
type Catalog struct {
	defs  []Definition
	index map[string]*Definition
}

// New builds a catalog from a definition list.
func New(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		defs:  defs,
		index: make(map[string]*Definition, len(defs)),
	}
	for i := range c.defs {
		d := &c.defs[i]
		if d.ID == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id", i)
		}
		if _, dup := c.index[d.ID]; dup {
			return nil, fmt.Errorf("catalog entry %q: duplicate id", d.ID)
		}
		if d.Width <= 0 || d.Height <= 0 {
			return nil, fmt.Errorf("catalog entry %q: footprint must be positive", d.ID)
		}
		if d.Price <= 0 {
			return nil, fmt.Errorf("catalog entry %q: price must be positive", d.ID)
		}
		c.index[d.ID] = d
	}
	return c, nil
}

// Load reads a YAML catalog file.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var file struct {
		Buildings []Definition `yaml:"buildings"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Buildings) == 0 {
		return nil, fmt.Errorf("catalog %s: no buildings defined", path)
	}
	return New(file.Buildings)
}

// Get returns the definition for id, or nil when unknown.
func (c *Catalog) Get(id string) *Definition {
	return c.index[id]
}

// All returns the definitions in catalog order. Callers must not mutate.
func (c *Catalog) All() []Definition {
	return c.defs
}

// ByCategory returns the definitions in one category, in catalog order.
func (c *Catalog) ByCategory(cat Category) []Definition {
	var out []Definition
	for _, d := range c.defs {
		if d.Category == cat {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}
