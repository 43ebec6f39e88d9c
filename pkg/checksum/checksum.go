package checksum

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
)

// Kind designates a checksum algorithm, guessed from the digest length
type Kind uint8

const (
	KindUnknown Kind = iota
	KindSHA1
	KindSHA256
	KindSHA512
)

func (k Kind) String() string {
	switch k {
	case KindSHA1:
		return "SHA1"
	case KindSHA256:
		return "SHA256"
	case KindSHA512:
		return "SHA512"
	default:
		return "UNKNOWN"
	}
}

// GuessKind guesses the algorithm from a hex digest length
func GuessKind(checksum string) Kind {
	switch len(checksum) {
	case 40:
		return KindSHA1
	case 64:
		return KindSHA256
	case 128:
		return KindSHA512
	default:
		return KindUnknown
	}
}

// FormatForDisplay labels a checksum with its guessed algorithm,
// e.g. "SHA1(5a0c00...)"; unrecognized digests pass through unchanged
func FormatForDisplay(checksum string) string {
	kind := GuessKind(checksum)
	if kind == KindUnknown {
		return checksum
	}

	return fmt.Sprintf("%s(%s)", kind, checksum)
}

// Compute produces a hex digest of a payload for a given kind
func Compute(kind Kind, payload []byte) string {
	switch kind {
	case KindSHA1:
		digest := sha1.Sum(payload)
		return hex.EncodeToString(digest[:])
	case KindSHA256:
		digest := sha256.Sum256(payload)
		return hex.EncodeToString(digest[:])
	case KindSHA512:
		digest := sha512.Sum512(payload)
		return hex.EncodeToString(digest[:])
	default:
		return ""
	}
}

// BestFrom picks the strongest known checksum from a list,
// or an empty string if none are recognized
func BestFrom(checksums []string) string {
	best := ""
	bestKind := KindUnknown

	for _, c := range checksums {
		if kind := GuessKind(c); kind > bestKind {
			best = c
			bestKind = kind
		}
	}

	return best
}
