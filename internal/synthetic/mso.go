package synthetic

import (
	"fmt"
	"math"

	"github.com/san-kum/tslab/internal/dynamo"
)

// MSO returns n samples of sin(0.2i+phase) + sin(0.311i+phase) with a
// single random phase drawn from src.
func MSO(n int, src Source) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("mso: n=%d: %w", n, dynamo.ErrInvalidArgument)
	}
	phase := orUnseeded(src).Float64()

	out := make([]float64, n)
	for i := range out {
		x := float64(i)
		out[i] = math.Sin(0.2*x+phase) + math.Sin(0.311*x+phase)
	}
	return out, nil
}
