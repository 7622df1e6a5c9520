package model

import "fmt"

// APIVersion selects which generation of the API surface is assembled.
type APIVersion string

const (
	V1 APIVersion = "v1"
	V2 APIVersion = "v2"
)

// Versions lists every supported API version.
func Versions() []APIVersion {
	return []APIVersion{V1, V2}
}

func (v APIVersion) Valid() bool {
	return v == V1 || v == V2
}

func ParseAPIVersion(s string) (APIVersion, error) {
	v := APIVersion(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown api version %q (valid: v1, v2)", s)
	}
	return v, nil
}
