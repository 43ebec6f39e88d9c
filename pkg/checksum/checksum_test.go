package checksum_test

import (
	"strings"
	"testing"

	"github.com/agubarev/firmtown/pkg/checksum"
	"github.com/stretchr/testify/assert"
)

func TestGuessKind(t *testing.T) {
	a := assert.New(t)

	a.Equal(checksum.KindSHA1, checksum.GuessKind(strings.Repeat("a", 40)))
	a.Equal(checksum.KindSHA256, checksum.GuessKind(strings.Repeat("a", 64)))
	a.Equal(checksum.KindSHA512, checksum.GuessKind(strings.Repeat("a", 128)))
	a.Equal(checksum.KindUnknown, checksum.GuessKind("deadbeef"))
	a.Equal(checksum.KindUnknown, checksum.GuessKind(""))
}

func TestFormatForDisplay(t *testing.T) {
	a := assert.New(t)

	sha1sum := strings.Repeat("5", 40)
	a.Equal("SHA1("+sha1sum+")", checksum.FormatForDisplay(sha1sum))

	sha256sum := strings.Repeat("f", 64)
	a.Equal("SHA256("+sha256sum+")", checksum.FormatForDisplay(sha256sum))

	// unrecognized digests pass through unchanged
	a.Equal("deadbeef", checksum.FormatForDisplay("deadbeef"))
}

func TestCompute(t *testing.T) {
	a := assert.New(t)

	payload := []byte("firmware payload")

	sha1sum := checksum.Compute(checksum.KindSHA1, payload)
	a.Len(sha1sum, 40)
	a.Equal(checksum.KindSHA1, checksum.GuessKind(sha1sum))

	sha256sum := checksum.Compute(checksum.KindSHA256, payload)
	a.Len(sha256sum, 64)
	a.Equal(checksum.KindSHA256, checksum.GuessKind(sha256sum))

	sha512sum := checksum.Compute(checksum.KindSHA512, payload)
	a.Len(sha512sum, 128)
	a.Equal(checksum.KindSHA512, checksum.GuessKind(sha512sum))

	a.Empty(checksum.Compute(checksum.KindUnknown, payload))
}

func TestBestFrom(t *testing.T) {
	a := assert.New(t)

	sha1sum := strings.Repeat("1", 40)
	sha256sum := strings.Repeat("2", 64)

	a.Equal(sha256sum, checksum.BestFrom([]string{sha1sum, sha256sum}))
	a.Equal(sha256sum, checksum.BestFrom([]string{sha256sum, sha1sum}))
	a.Equal(sha1sum, checksum.BestFrom([]string{sha1sum, "junk"}))
	a.Empty(checksum.BestFrom([]string{"junk"}))
	a.Empty(checksum.BestFrom(nil))
}
