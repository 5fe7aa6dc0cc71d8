package learning

import (
	"math"

	"github.com/neurlang/sentiment/mat"
)

// AdamW is an adaptive gradient solver with decoupled weight decay. State
// slices are allocated lazily and keyed by parameter position, so a solver
// must always be stepped with the same parameter list.
type AdamW struct {
	LR          float64
	Beta1       float64
	Beta2       float64
	Eps         float64
	WeightDecay float64

	T int
	M [][]float64
	V [][]float64
}

// NewAdamW returns a solver with the standard beta/epsilon constants and a
// small decoupled weight decay.
func NewAdamW(learningRate float64) *AdamW {
	return &AdamW{
		LR:          learningRate,
		Beta1:       0.9,
		Beta2:       0.999,
		Eps:         1e-8,
		WeightDecay: 1e-4,
	}
}

// Step applies one update to every parameter from its accumulated
// gradients, then zeroes them. Non-finite gradients are treated as zero so
// a single bad batch cannot poison the optimizer state.
func (s *AdamW) Step(params []*mat.Mat) {
	s.T++
	t := float64(s.T)
	lrT := s.LR * math.Sqrt(1.0-math.Pow(s.Beta2, t)) / (1.0 - math.Pow(s.Beta1, t))

	for len(s.M) < len(params) {
		i := len(s.M)
		s.M = append(s.M, make([]float64, len(params[i].W)))
		s.V = append(s.V, make([]float64, len(params[i].W)))
	}

	for k, p := range params {
		m, v := s.M[k], s.V[k]
		for i := range p.W {
			grad := p.DW[i]
			if math.IsNaN(grad) || math.IsInf(grad, 0) {
				grad = 0
			}
			m[i] = s.Beta1*m[i] + (1.0-s.Beta1)*grad
			v[i] = s.Beta2*v[i] + (1.0-s.Beta2)*grad*grad
			p.W[i] -= lrT * m[i] / (math.Sqrt(v[i]) + s.Eps)
			p.W[i] -= s.LR * s.WeightDecay * p.W[i]
		}
		p.ZeroGrads()
	}
}
