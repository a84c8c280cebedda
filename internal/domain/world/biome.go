package world

import "strings"

type Biome string

const (
	BiomeForest    Biome = "forest"
	BiomeDesert    Biome = "desert"
	BiomeMountains Biome = "mountains"

	// BiomeAll marks resources that can be collected everywhere. It is never
	// a valid current location.
	BiomeAll Biome = "all"
)

const DefaultBiome = BiomeForest

var travelBiomes = []Biome{BiomeForest, BiomeDesert, BiomeMountains}

func Biomes() []Biome {
	out := make([]Biome, len(travelBiomes))
	copy(out, travelBiomes)
	return out
}

func ParseBiome(raw string) (Biome, bool) {
	b := Biome(strings.ToLower(strings.TrimSpace(raw)))
	if !b.IsTravelable() {
		return "", false
	}
	return b, true
}

func (b Biome) IsTravelable() bool {
	for _, candidate := range travelBiomes {
		if b == candidate {
			return true
		}
	}
	return false
}

// Matches reports whether something tagged with b is available in current.
func (b Biome) Matches(current Biome) bool {
	return b == BiomeAll || b == current
}
