// Package shared holds tiny helpers used by several packages.
package shared

// WipeByteArray overwrites b with zeros so secrets such as passwords do not
// linger in memory. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
