package domain

// Zero overwrites every buffer with zeros. Nil buffers are skipped.
// Use it on derived keys and decrypted plaintext once they are no longer needed.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
}
