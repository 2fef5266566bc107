// Package common contains small helpers shared across client layers.
package common

// WipeByteArray overwrites the buffer with zeros. Use it to clear password
// bytes once they have been handed to the transport.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
