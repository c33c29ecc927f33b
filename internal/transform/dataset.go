package transform

import (
	"fmt"

	"github.com/san-kum/tslab/internal/dynamo"
)

// CreateDataset turns a series into supervised pairs: each row of X holds
// lookBack consecutive values and the matching row of Y the timeAhead
// values that follow them.
func CreateDataset(x []float64, lookBack, timeAhead int) ([][]float64, [][]float64, error) {
	if lookBack < 1 || timeAhead < 1 {
		return nil, nil, fmt.Errorf("dataset: look_back=%d time_ahead=%d: %w", lookBack, timeAhead, dynamo.ErrInvalidArgument)
	}
	if len(x) <= lookBack+timeAhead {
		return nil, nil, fmt.Errorf("dataset: %d points for look_back=%d time_ahead=%d: %w",
			len(x), lookBack, timeAhead, dynamo.ErrInsufficientData)
	}

	rows := len(x) + 1 - timeAhead - lookBack
	dataX := make([][]float64, 0, rows)
	dataY := make([][]float64, 0, rows)
	for s := lookBack; s < len(x)+1-timeAhead; s++ {
		dataX = append(dataX, append([]float64(nil), x[s-lookBack:s]...))
		dataY = append(dataY, append([]float64(nil), x[s:s+timeAhead]...))
	}
	return dataX, dataY, nil
}
