package device

import (
	"strconv"
	"strings"
	"time"

	"github.com/agubarev/firmtown/pkg/checksum"
	"github.com/agubarev/firmtown/pkg/wire"
)

// value column starts at this offset from the key start,
// with a minimum of one space after the colon
const padOffset = 20

func padKV(b *strings.Builder, key string, value *string) {
	// ignore
	if value == nil {
		return
	}

	b.WriteString("  ")
	b.WriteString(key)
	b.WriteString(": ")

	for i := len(key); i < padOffset; i++ {
		b.WriteString(" ")
	}

	b.WriteString(*value)
	b.WriteString("\n")
}

func padKVStr(b *strings.Builder, key string, value string) {
	padKV(b, key, &value)
}

func padKVUnix(b *strings.Builder, key string, value uint64) {
	// ignore
	if value == 0 {
		return
	}

	padKVStr(b, key, time.Unix(int64(value), 0).UTC().Format("2006-01-02"))
}

func padKVFlags(b *strings.Builder, key string, flags uint64, lookup FlagLookup) {
	names := make([]string, 0)

	for i := 0; i < 64; i++ {
		if flags&(1<<uint64(i)) == 0 {
			continue
		}

		names = append(names, lookup(Flag(1<<uint64(i))))
	}

	if len(names) == 0 {
		padKVStr(b, key, lookup(FlagUnknown))
		return
	}

	padKVStr(b, key, strings.Join(names, "|"))
}

func padKVInt(b *strings.Builder, key string, value uint32) {
	// ignore
	if value == 0 {
		return
	}

	padKVStr(b, key, strconv.FormatUint(uint64(value), 10))
}

// Format builds a padded, human-readable multi-line report of every
// set field; the flag vocabulary is injected so the formatter is
// testable without the full flag set wired in
func (d *Device) Format(lookup FlagLookup) string {
	b := &strings.Builder{}

	for _, guid := range d.guids {
		padKVStr(b, wire.KeyGUID, guid)
	}

	padKV(b, wire.KeyDeviceID, d.id)
	padKV(b, wire.KeyDescription, d.description)
	padKV(b, wire.KeyPlugin, d.provider)
	padKVFlags(b, wire.KeyFlags, d.flags, lookup)

	for _, c := range d.checksums {
		padKVStr(b, wire.KeyChecksum, checksum.FormatForDisplay(c))
	}

	padKV(b, wire.KeyVendor, d.vendor)
	padKV(b, wire.KeyVersion, d.version)
	padKV(b, wire.KeyVersionLowest, d.versionLowest)
	padKV(b, wire.KeyVersionBootloader, d.versionBootloader)

	// values of 2 and above are not noteworthy to show
	if d.flashesLeft < 2 {
		padKVInt(b, wire.KeyFlashesLeft, d.flashesLeft)
	}

	padKVUnix(b, wire.KeyCreated, d.created)
	padKVUnix(b, wire.KeyModified, d.modified)

	return b.String()
}

// String renders the report with the canonical flag vocabulary
func (d *Device) String() string {
	return d.Format(Flag.Translate)
}
