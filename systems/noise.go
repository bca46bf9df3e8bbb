package systems

import (
	"fmt"
	"math"

	perlin "github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/fog/config"
)

// Noise kinds accepted by NewNoise.
const (
	NoiseValue   = "value"
	NoiseSimplex = "simplex"
	NoisePerlin  = "perlin"
)

// Noise1D is a smooth scalar signal over one coordinate.
// Sample must be deterministic and return values in [-1, 1].
type Noise1D interface {
	Sample(x float64) float64
}

// ValueNoise is hashed lattice noise interpolated with smoothstep.
// Samples at integer coordinates return the lattice hash exactly.
type ValueNoise struct {
	Seed int32
}

// Sample returns the noise value at x. x must be finite.
func (n ValueNoise) Sample(x float64) float64 {
	fx := math.Floor(x)
	x0 := int32(fx)
	x1 := x0 + 1

	w1 := smoothstep(x - fx)
	w0 := 1 - w1

	return w0*n.hash(x0) + w1*n.hash(x1)
}

// hash maps a lattice index to a pseudo-random value in (-1, 1].
// Arithmetic is int32 and wraps on overflow.
func (n ValueNoise) hash(i int32) float64 {
	x := i + n.Seed
	x = (x << 13) ^ x
	v := (x*(x*x*15731+789221) + 1376312589) & 0x7fffffff
	return 1.0 - float64(v)/1073741824.0
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// SimplexNoise samples a line through 2-D OpenSimplex noise.
type SimplexNoise struct {
	noise opensimplex.Noise
}

// NewSimplexNoise creates a simplex source for the given seed.
func NewSimplexNoise(seed int64) *SimplexNoise {
	return &SimplexNoise{noise: opensimplex.New(seed)}
}

// Sample returns the noise value at x.
func (s *SimplexNoise) Sample(x float64) float64 {
	return clampUnit(s.noise.Eval2(x, 0))
}

// PerlinNoise wraps classic gradient Perlin noise.
type PerlinNoise struct {
	noise *perlin.Perlin
}

// NewPerlinNoise creates a Perlin source.
// alpha is the weight per octave, beta the frequency harmonic and octaves the number of iterations.
func NewPerlinNoise(alpha, beta float64, octaves int32, seed int64) *PerlinNoise {
	return &PerlinNoise{noise: perlin.NewPerlin(alpha, beta, octaves, seed)}
}

// Sample returns the noise value at x.
func (p *PerlinNoise) Sample(x float64) float64 {
	return clampUnit(p.noise.Noise1D(x))
}

// NewNoise builds the noise source selected in the config.
func NewNoise(cfg config.NoiseConfig) (Noise1D, error) {
	switch cfg.Kind {
	case "", NoiseValue:
		return ValueNoise{Seed: int32(cfg.Seed)}, nil
	case NoiseSimplex:
		return NewSimplexNoise(cfg.Seed), nil
	case NoisePerlin:
		octaves := cfg.PerlinOctave
		if octaves <= 0 {
			octaves = 3
		}
		return NewPerlinNoise(cfg.PerlinAlpha, cfg.PerlinBeta, octaves, cfg.Seed), nil
	default:
		return nil, fmt.Errorf("unknown noise kind %q", cfg.Kind)
	}
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
