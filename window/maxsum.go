package window

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// ErrInvalidArgument is returned when a window does not fit its input.
var ErrInvalidArgument = errors.New("invalid argument")

// Number is any integer or floating-point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// MaxSum returns the maximum sum over all contiguous windows of exactly k
// elements of numbers.
//
// It fails with ErrInvalidArgument if numbers is empty, k is not positive or
// k exceeds len(numbers).
//
// Example:
//
//	sum, err := MaxSum([]int{2, 1, 5, 1, 3, 2}, 3) // 9
func MaxSum[T Number](numbers []T, k int) (T, error) {
	sum, _, err := MaxSumWindow(numbers, k)
	return sum, err
}

// MaxSumWindow is like MaxSum but also returns the start index of the first
// window reaching the maximum.
func MaxSumWindow[T Number](numbers []T, k int) (T, int, error) {
	if err := validate(len(numbers), k); err != nil {
		return 0, 0, err
	}

	var current T
	for _, n := range numbers[:k] {
		current += n
	}

	best, start := current, 0
	for right := k; right < len(numbers); right++ {
		current += numbers[right] - numbers[right-k]
		if current > best {
			best, start = current, right-k+1
		}
	}

	return best, start, nil
}

func validate(n, k int) error {
	switch {
	case n == 0:
		return fmt.Errorf("%w: empty sequence", ErrInvalidArgument)
	case k <= 0:
		return fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidArgument, k)
	case k > n:
		return fmt.Errorf("%w: window size %d exceeds sequence length %d", ErrInvalidArgument, k, n)
	}

	return nil
}
