// Package world holds the island tile grid and its procedural generator.
package world

import "fmt"

// TileKind is the terrain type of a single grid cell.
type TileKind uint8

const (
	Water TileKind = iota
	Sand
	Grass
	Road
)

// Name returns a human-readable name for a tile kind.
func (t TileKind) Name() string {
	switch t {
	case Water:
		return "Water"
	case Sand:
		return "Sand"
	case Grass:
		return "Grass"
	case Road:
		return "Road"
	default:
		return "Unknown"
	}
}

// DecorationKind identifies a cosmetic scatter object.
type DecorationKind uint8

const (
	DecorTree DecorationKind = iota
	DecorRock
	DecorBush
)

// Decoration is a cosmetic-only object on a land tile. It never collides
// with buildings and carries no gameplay state.
type Decoration struct {
	X         int            `json:"x"`
	Y         int            `json:"y"`
	Kind      DecorationKind `json:"kind"`
	Variation float64        `json:"variation"`
}

// Grid is the 2D tile map. Tiles are indexed [y][x]. The grid is owned by
// a single game session and is not mutated after generation (road carving
// happens inside Generate).
type Grid struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Tiles  [][]TileKind `json:"tiles"`
}

// NewGrid allocates a width×height grid filled with Water.
func NewGrid(width, height int) *Grid {
	tiles := make([][]TileKind, height)
	for y := range tiles {
		tiles[y] = make([]TileKind, width)
	}
	return &Grid{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether (x, y) is a valid cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// At returns the tile kind at (x, y). Out-of-bounds cells read as Water.
func (g *Grid) At(x, y int) TileKind {
	if !g.InBounds(x, y) {
		return Water
	}
	return g.Tiles[y][x]
}

// Buildable reports whether a cell can carry a building footprint.
// Only Grass and Sand accept construction; Water and Road never do.
func (g *Grid) Buildable(x, y int) bool {
	t := g.At(x, y)
	return t == Grass || t == Sand
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d)", g.Width, g.Height)
}

// Island bundles the generated terrain with its decoration scatter.
type Island struct {
	Grid        *Grid        `json:"grid"`
	Decorations []Decoration `json:"decorations"`
}

// TileCounts returns the terrain distribution, useful for boot logging
// and generator tests.
func (i *Island) TileCounts() map[TileKind]int {
	counts := make(map[TileKind]int)
	for y := 0; y < i.Grid.Height; y++ {
		for x := 0; x < i.Grid.Width; x++ {
			counts[i.Grid.Tiles[y][x]]++
		}
	}
	return counts
}
