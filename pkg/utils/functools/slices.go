package functools

// Reduce - accumulation, no errors
func Reduce[T any, R any](slice []T, initialValue R, fn func(R, T) R) R {
	result := initialValue
	for _, v := range slice {
		result = fn(result, v)
	}
	return result
}
