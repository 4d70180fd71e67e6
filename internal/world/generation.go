// Island generation: a roughly circular landmass shaped by an angular
// sinusoid with a simplex-noise coastline, a sand ring at the waterline,
// decoration scatter on grass, and a carved road lattice.
package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds island generation parameters.
type GenConfig struct {
	Size int   // Grid edge length in tiles (~60 for the default island)
	Seed int64 // Random seed (0 = random)
}

// DefaultGenConfig returns the standard island size.
func DefaultGenConfig() GenConfig {
	return GenConfig{Size: 60, Seed: 0}
}

// SmallTestConfig returns a tiny island for fast tests.
func SmallTestConfig() GenConfig {
	return GenConfig{Size: 24, Seed: 42}
}

const (
	sandBandWidth   = 3.0  // Tiles of beach between grass and water
	decorationProb  = 0.15 // Per-grass-cell chance of a decoration
	roadSpacing     = 8    // Tiles between parallel roads
	roadSpanMin     = 0.2  // Road lattice covers the central span of the island
	roadSpanMax     = 0.8
	coastNoiseScale = 0.9  // Amplitude of the simplex coastline term
	coastNoiseFreq  = 0.15 // Frequency of the simplex coastline term
)

// Generate builds a complete island. Terrain shape is deterministic for a
// given {Size, Seed}; decoration scatter uses the same seeded source, so the
// whole result is reproducible.
func Generate(cfg GenConfig) *Island {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))
	coastNoise := opensimplex.NewNormalized(seed + 1)

	grid := NewGrid(cfg.Size, cfg.Size)
	var decorations []Decoration

	center := float64(cfg.Size) / 2
	baseRadius := float64(cfg.Size) * 0.45

	for y := 0; y < cfg.Size; y++ {
		for x := 0; x < cfg.Size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			dist := math.Sqrt(dx*dx + dy*dy)

			// Angle-dependent sinusoid gives the island its lobed shape;
			// the simplex term roughens the coastline.
			angle := math.Atan2(dy, dx)
			wobble := math.Sin(angle*8+dist*0.2) * 2
			rough := (coastNoise.Eval2(dx*coastNoiseFreq, dy*coastNoiseFreq) - 0.5) * 2 * coastNoiseScale
			radius := baseRadius + wobble + rough

			if dist >= radius {
				continue // Stays water.
			}
			if dist > radius-sandBandWidth {
				grid.Tiles[y][x] = Sand
				continue
			}
			grid.Tiles[y][x] = Grass
			if rng.Float64() < decorationProb {
				decorations = append(decorations, Decoration{
					X:         x,
					Y:         y,
					Kind:      pickDecoration(rng),
					Variation: rng.Float64(),
				})
			}
		}
	}

	decorations = carveRoads(grid, decorations)

	return &Island{Grid: grid, Decorations: decorations}
}

// pickDecoration chooses a scatter kind: 30% rock, 35% bush, 35% tree.
func pickDecoration(rng *rand.Rand) DecorationKind {
	r := rng.Float64()
	switch {
	case r > 0.7:
		return DecorRock
	case r > 0.35:
		return DecorBush
	default:
		return DecorTree
	}
}

// carveRoads paints a lattice of straight roads across the central span.
// Roads only replace Grass — never Water or Sand — and clear any decoration
// on the cells they cross. Returns the surviving decoration list.
func carveRoads(grid *Grid, decorations []Decoration) []Decoration {
	start := int(float64(grid.Width) * roadSpanMin)
	end := int(float64(grid.Width) * roadSpanMax)

	onRoad := make(map[[2]int]bool)
	for i := start; i <= end; i += roadSpacing {
		for j := start; j <= end; j++ {
			// Vertical line at x=i and horizontal line at y=i.
			if grid.At(i, j) == Grass {
				grid.Tiles[j][i] = Road
				onRoad[[2]int{i, j}] = true
			}
			if grid.At(j, i) == Grass {
				grid.Tiles[i][j] = Road
				onRoad[[2]int{j, i}] = true
			}
		}
	}

	if len(onRoad) == 0 {
		return decorations
	}
	kept := decorations[:0]
	for _, d := range decorations {
		if !onRoad[[2]int{d.X, d.Y}] {
			kept = append(kept, d)
		}
	}
	return kept
}
