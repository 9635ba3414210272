package domain

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"gopkg.in/yaml.v3"
)

const secretParam = "secret"

// Digest names a one-way hash used by SecretValue
type Digest string

const (
	// DigestMD5 is the default, kept for compatibility with stored credentials
	DigestMD5        Digest = "md5"
	DigestSHA256     Digest = "sha256"
	DigestBLAKE2b256 Digest = "blake2b-256"
	DigestSHA3256    Digest = "sha3-256"
)

// DefaultDigest is used by ApplyOneWayHash.
const DefaultDigest = DigestMD5

// ParseDigest validates a digest name, case-insensitively.
func ParseDigest(name string) (Digest, error) {
	d := Digest(strings.ToLower(strings.TrimSpace(name)))
	switch d {
	case DigestMD5, DigestSHA256, DigestBLAKE2b256, DigestSHA3256:
		return d, nil
	case "":
		return DefaultDigest, nil
	}
	return "", FormatError(secretParam, name, "unknown digest")
}

// Sum returns the lowercase hex digest of data.
func (d Digest) Sum(data []byte) (string, error) {
	switch d {
	case DigestMD5:
		sum := md5.Sum(data)
		return hex.EncodeToString(sum[:]), nil
	case DigestSHA256:
		sum := sha256.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	case DigestBLAKE2b256:
		sum := blake2b.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	case DigestSHA3256:
		sum := sha3.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	}
	return "", FormatError(secretParam, string(d), "unknown digest")
}

// SecretValue holds a credential as plain text until ApplyOneWayHash
// replaces it with a hex digest.
//
// Hashing is not idempotent: a second call hashes the previous digest,
// not the original text. Callers that load already-hashed values must not
// hash them again.
type SecretValue struct {
	text   string
	hashed bool
}

func (SecretValue) ParamType() string { return secretParam }

// String returns the stored text, plain or hashed.
func (s SecretValue) String() string { return s.text }

// Hashed reports whether a hash was applied since the last Assign.
func (s SecretValue) Hashed() bool { return s.hashed }

// Assign stores text verbatim. It never fails.
func (s *SecretValue) Assign(text string) error {
	s.text = text
	s.hashed = false
	return nil
}

// ApplyOneWayHash replaces the text with its DefaultDigest hex digest.
// Calling it again hashes the digest, not the original text; check Hashed first.
func (s *SecretValue) ApplyOneWayHash() {
	// DefaultDigest is always known to Sum.
	_ = s.ApplyOneWayHashWith(DefaultDigest)
}

// ApplyOneWayHashWith replaces the text with its hex digest under d.
func (s *SecretValue) ApplyOneWayHashWith(d Digest) error {
	sum, err := d.Sum([]byte(s.text))
	if err != nil {
		return err
	}
	s.text = sum
	s.hashed = true
	return nil
}

// Matches reports whether plain hashes to the stored digest under d.
func (s SecretValue) Matches(plain string, d Digest) bool {
	sum, err := d.Sum([]byte(plain))
	return err == nil && s.hashed && sum == s.text
}

// LogValue keeps secrets out of structured logs.
func (s SecretValue) LogValue() slog.Value {
	if s.text == "" {
		return slog.StringValue("")
	}
	return slog.StringValue("[REDACTED]")
}

func (s SecretValue) MarshalText() ([]byte, error) { return []byte(s.text), nil }

func (s *SecretValue) UnmarshalText(text []byte) error { return s.Assign(string(text)) }

func (s SecretValue) MarshalYAML() (any, error) { return s.text, nil }

func (s *SecretValue) UnmarshalYAML(node *yaml.Node) error { return AssignNode(s, node) }
