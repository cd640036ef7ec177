// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// MaxVec finds and returns the index of the maximum value in a vector.
// If multiple equal max values exist, only the first one is returned.
func MaxVec(values mat.Vector) int {
	max, idx := values.AtVec(0), 0

	for i := 0; i < values.Len(); i++ {
		if values.AtVec(i) > max {
			max = values.AtVec(i)
			idx = i
		}
	}
	return idx
}

// OneHot returns a vector of length n which is 1.0 at index i and 0.0
// everywhere else
func OneHot(n, i int) *mat.VecDense {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("oneHot: index %d out of range [0, %d)", i, n))
	}
	v := mat.NewVecDense(n, nil)
	v.SetVec(i, 1.0)
	return v
}
