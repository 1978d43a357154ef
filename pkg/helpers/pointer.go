package helpers

// Ptr returns a pointer to val.
func Ptr[T any](val T) *T {
	return &val
}

// Value dereferences val, or returns the zero value for nil. Upstream JSON nulls decode to nil.
func Value[T any](val *T) T {
	if val == nil {
		var zero T
		return zero
	}
	return *val
}
