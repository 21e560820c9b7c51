package roadroughness

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// MovingAverage smooths arr with a uniform kernel of windowSize
// samples. The input is reflect-padded by windowSize/2 on each end,
// convolved in valid mode, and the final convolution value is dropped,
// so the result has len(arr)-1 values for odd window sizes. The
// trailing drop is part of the contract; downstream consumers depend
// on the shorter series.
//
// windowSize must be positive and small enough that the padding fits
// inside arr.
func MovingAverage(arr []float64, windowSize int) ([]float64, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("window size %d: %w", windowSize, ErrInvalidArgument)
	}
	pad := windowSize / 2
	if pad > 0 && pad >= len(arr) {
		return nil, fmt.Errorf("window size %d needs at least %d samples, got %d: %w",
			windowSize, pad+1, len(arr), ErrInvalidArgument)
	}

	padded := reflectPad(arr, pad)
	if len(padded) < windowSize {
		return []float64{}, nil
	}

	// Rolling-sum convolution with the 1/windowSize kernel.
	out := make([]float64, 0, len(padded)-windowSize+1)
	sum := floats.Sum(padded[:windowSize])
	out = append(out, sum/float64(windowSize))
	for i := windowSize; i < len(padded); i++ {
		sum += padded[i] - padded[i-windowSize]
		out = append(out, sum/float64(windowSize))
	}
	return out[:len(out)-1], nil
}

// reflectPad mirrors the series outward around its first and last
// samples, which themselves are not repeated: [1 2 3] padded by 2 is
// [3 2 1 2 3 2 1].
func reflectPad(arr []float64, pad int) []float64 {
	if pad == 0 {
		return arr
	}
	out := make([]float64, 0, len(arr)+2*pad)
	for i := pad; i >= 1; i-- {
		out = append(out, arr[i])
	}
	out = append(out, arr...)
	n := len(arr)
	for i := 2; i <= pad+1; i++ {
		out = append(out, arr[n-i])
	}
	return out
}
