package utility

import "fmt"

// Map returns a new slice holding f applied to every element of input.
func Map[A any, B any](input []A, f func(A) B) []B {
	output := make([]B, len(input))
	for i, v := range input {
		output[i] = f(v)
	}
	return output
}

// MapE is like Map for fallible functions. It stops at the first error and
// reports the index of the element that caused it.
func MapE[A any, B any](input []A, f func(A) (B, error)) ([]B, error) {
	output := make([]B, len(input))
	for i, v := range input {
		mapped, err := f(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		output[i] = mapped
	}
	return output, nil
}
