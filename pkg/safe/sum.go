// Package safe provides integer arithmetic with overflow checks.
package safe

import (
	"fmt"
	"math"
)

// Add returns a+b, failing when the result does not fit in uint64.
func Add(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, fmt.Errorf("%d + %d overflows uint64", a, b)
	}
	return a + b, nil
}

// Sum adds every value returned by value(item), failing on overflow.
func Sum[T any](items []T, value func(T) uint64) (uint64, error) {
	var total uint64
	for _, item := range items {
		next, err := Add(total, value(item))
		if err != nil {
			return 0, err
		}
		total = next
	}
	return total, nil
}
