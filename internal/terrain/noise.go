package terrain

import "math"

const (
	noiseFrequency   = 0.15
	noiseOctaves     = 3
	noisePersistence = 0.5
	noiseLacunarity  = 2
)

// fractalNoise sums octaves of hashed value noise into -1..1.
func fractalNoise(x, y float64, seed int64) float64 {
	frequency := noiseFrequency
	amplitude := 1.0
	noiseSum := 0.0
	maxAmplitude := 0.0

	for i := 0; i < noiseOctaves; i++ {
		noise := valueNoise(x*frequency, y*frequency, seed)
		noiseSum += noise * amplitude
		maxAmplitude += amplitude
		amplitude *= noisePersistence
		frequency *= noiseLacunarity
	}

	if maxAmplitude == 0 {
		return 0
	}
	return noiseSum / maxAmplitude
}

func valueNoise(x, y float64, seed int64) float64 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := x0 + 1
	y1 := y0 + 1

	sx := smooth(x - float64(x0))
	sy := smooth(y - float64(y0))

	ix0 := lerp(random2D(x0, y0, seed), random2D(x1, y0, seed), sx)
	ix1 := lerp(random2D(x0, y1, seed), random2D(x1, y1, seed), sx)
	return lerp(ix0, ix1, sy)
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func random2D(x, y int, seed int64) float64 {
	return float64(hash3(x, y, int(seed))&0xFFFF)/0x8000 - 1.0
}

func hash3(x, y, z int) uint32 {
	h := uint32(x*374761393 + y*668265263 + z*2147483647)
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

// columnRNG is a xorshift stream keyed by column and seed, so a column's
// decoration does not depend on the order workers reach it.
type columnRNG struct {
	state uint64
}

func newColumnRNG(x, y int, seed int64) *columnRNG {
	state := uint64(uint32(x))<<32 ^ uint64(uint32(y))<<1 ^ uint64(seed)
	if state == 0 {
		state = 0x9e3779b97f4a7c15
	}
	return &columnRNG{state: state}
}

func (r *columnRNG) next() uint64 {
	r.state ^= r.state << 7
	r.state ^= r.state >> 9
	r.state ^= r.state << 8
	return r.state
}

// chance returns true with probability p.
func (r *columnRNG) chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return float64(r.next()&0xFFFF)/0x10000 < p
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
