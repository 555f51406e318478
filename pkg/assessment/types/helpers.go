package types

func StrPtr(v string) *string {
	return &v
}

func IntPtr(v int) *int {
	return &v
}

func Float64Ptr(v float64) *float64 {
	return &v
}
