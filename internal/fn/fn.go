// Package fn holds small generic helpers.
package fn

// T is short for ternary.
func T[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}
