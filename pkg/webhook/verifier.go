package webhook

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Digests maps the algorithm names accepted in a signature header to their
// hash constructors. Anything not listed fails verification.
var Digests = map[string]func() hash.Hash{
	"md5":      md5.New,
	"sha1":     sha1.New,
	"sha224":   sha256.New224,
	"sha256":   sha256.New,
	"sha384":   sha512.New384,
	"sha512":   sha512.New,
	"sha3_256": sha3.New256,
	"sha3_512": sha3.New512,
}

// ParseSignature splits "<algorithm>=<hex digest>" on the first '='.
func ParseSignature(header string) (algorithm, digest string, ok bool) {
	algorithm, digest, ok = strings.Cut(strings.TrimSpace(header), "=")
	if !ok || algorithm == "" || digest == "" {
		return "", "", false
	}
	return strings.ToLower(algorithm), digest, true
}

// Sign returns the header value a sender holding secret would attach to body.
func Sign(algorithm string, body []byte, secret string) (string, bool) {
	newHash, ok := Digests[algorithm]
	if !ok {
		return "", false
	}
	mac := hmac.New(newHash, []byte(secret))
	mac.Write(body)
	return algorithm + "=" + hex.EncodeToString(mac.Sum(nil)), true
}

// Verify reports whether header carries a valid HMAC of body under secret.
// Missing or malformed headers, unknown algorithms and an empty secret all
// fail closed.
func Verify(header string, body []byte, secret string) bool {
	if secret == "" {
		return false
	}
	algorithm, digest, ok := ParseSignature(header)
	if !ok {
		return false
	}
	expected, ok := Sign(algorithm, body, secret)
	if !ok {
		return false
	}

	provided := algorithm + "=" + strings.ToLower(digest)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}
