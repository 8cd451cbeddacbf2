package ptr

// To returns a pointer to the given value.
func To[T any](v T) *T {
	return &v
}

func ToBool(v bool) *bool {
	return &v
}

func ToInt(v int) *int {
	return &v
}

func ToString(v string) *string {
	return &v
}

// Deref returns the value behind p, or the zero value when p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
