// Package digest fingerprints test case mocks so stored outcomes can tell whether a figure changed between runs.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/gowebpki/jcs"
)

// CanonicalizeJSON returns the RFC 8785 (JCS) canonical form of JSON input.
func CanonicalizeJSON(input []byte) ([]byte, error) {
	return jcs.Transform(input)
}

// JSON canonicalizes input and returns its sha256 hex digest.
// Formatting and key order do not change the digest.
func JSON(input []byte) (string, error) {
	canonical, err := CanonicalizeJSON(input)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// File digests the JSON document at path
func File(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read mock: %w", err)
	}
	d, err := JSON(data)
	if err != nil {
		return "", fmt.Errorf("canonicalize mock %s: %w", path, err)
	}
	return d, nil
}
