package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainDocument = "jmlgen/document/v1"
	DomainOutput   = "jmlgen/output/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DocumentHash identifies a Contract-LIB source document.
// The source is NFC normalized first so visually identical documents saved
// by different editors hash the same.
func DocumentHash(source string) string {
	return hashWithDomain(DomainDocument, []byte(norm.NFC.String(source)))
}

// OutputHash identifies generated output for a given view.
func OutputHash(view, output string) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"view":   view,
		"output": output,
	})
	if err != nil {
		return "", fmt.Errorf("OutputHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainOutput, canonical), nil
}
