package synthetic

import (
	"fmt"
	"math"

	"github.com/san-kum/tslab/internal/dynamo"
)

const (
	mgBase   = 1.2
	mgJitter = 0.2
	mgBeta   = 0.2
	mgGamma  = 0.1
	mgPower  = 10

	// MaxHistory bounds tau*deltaT, the number of float64 slots kept.
	MaxHistory = 1 << 24
)

// history is a fixed-capacity FIFO over the last tau*deltaT sub-step values.
type history struct {
	buf  []float64
	head int
}

// shift evicts and returns the oldest value, appending v as the newest.
func (h *history) shift(v float64) float64 {
	old := h.buf[h.head]
	h.buf[h.head] = v
	h.head++
	if h.head == len(h.buf) {
		h.head = 0
	}
	return old
}

// MackeyGlass returns n samples of the Mackey-Glass series with delay tau
// (in timesteps) and deltaT Euler sub-steps per timestep, squashed through
// tanh(x-1). All values lie in (-1, 1).
func MackeyGlass(n, tau, deltaT int, src Source) ([]float64, error) {
	if n < 1 || tau < 1 || deltaT < 1 {
		return nil, fmt.Errorf("mackey-glass: n=%d tau=%d delta_t=%d: %w", n, tau, deltaT, dynamo.ErrInvalidArgument)
	}
	if tau > MaxHistory/deltaT {
		return nil, fmt.Errorf("mackey-glass: history tau*delta_t exceeds %d slots (tau=%d delta_t=%d): %w",
			MaxHistory, tau, deltaT, dynamo.ErrInvalidArgument)
	}
	src = orUnseeded(src)

	h := &history{buf: make([]float64, tau*deltaT)}
	for i := range h.buf {
		h.buf[i] = mgBase + mgJitter*(src.Float64()-0.5)
	}

	x := mgBase
	steps := float64(deltaT)
	out := make([]float64, n)

	for t := 0; t < n; t++ {
		for s := 0; s < deltaT; s++ {
			xTau := h.shift(x)
			x += (mgBeta*xTau/(1.0+math.Pow(xTau, mgPower)) - mgGamma*x) / steps
		}
		out[t] = x
	}

	for i, v := range out {
		out[i] = math.Tanh(v - 1)
	}
	return out, nil
}
