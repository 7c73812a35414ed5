package ir

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// Domain prefixes for content digests.
// Version suffix enables future algorithm migration.
const (
	DomainFile   = "stepgraph/file/v1"
	DomainRecord = "stepgraph/record/v1"
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

// FileDigest computes the content digest of serialized STEP text.
// Text is NFC normalized first so canonically equivalent labels hash alike.
func FileDigest(text string) string {
	return hashWithDomain(DomainFile, []byte(norm.NFC.String(text)))
}

// RecordDigest computes the content digest of one serialized record body.
func RecordDigest(body string) string {
	return hashWithDomain(DomainRecord, []byte(norm.NFC.String(body)))
}
