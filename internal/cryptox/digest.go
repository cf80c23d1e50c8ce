// Package cryptox computes content fingerprints for uploaded files.
package cryptox

import (
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// DigestReader streams r through BLAKE2b-256 and returns the hex digest.
// It is used to recognise a resume that was already submitted for a job.
func DigestReader(r io.Reader) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("digest read: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Digest is DigestReader for in-memory data.
func Digest(b []byte) string {
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}
