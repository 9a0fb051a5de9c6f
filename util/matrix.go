package util

import (
	"encoding/json"
)

// Dense row-major matrix.
type Matrix[T any] struct {
	values []T
	rows   int
	cols   int
}

func NewMatrix[T any](rows, cols int) Matrix[T] {
	return Matrix[T]{
		values: make([]T, rows*cols),
		rows:   rows,
		cols:   cols,
	}
}

func (self *Matrix[T]) Get(row, col int) T {
	return self.values[row*self.cols+col]
}
func (self *Matrix[T]) Set(row, col int, value T) {
	self.values[row*self.cols+col] = value
}
func (self *Matrix[T]) Rows() int {
	return self.rows
}
func (self *Matrix[T]) Cols() int {
	return self.cols
}

// Encodes the matrix as nested json arrays.
func (self Matrix[T]) MarshalJSON() ([]byte, error) {
	rows := make([][]T, self.rows)
	for i := 0; i < self.rows; i++ {
		rows[i] = self.values[i*self.cols : (i+1)*self.cols]
	}
	return json.Marshal(rows)
}
