package device

import "strings"

// Flag is a single device capability/status bit
type Flag uint64

// declaring discrete flags for all known capabilities
const (
	FlagUnknown         = Flag(0)
	FlagInternal        = Flag(1 << uint64(iota-1))
	FlagUpdatable
	FlagOnlyOffline
	FlagRequireAC
	FlagLocked
	FlagSupported
	FlagNeedsBootloader
	FlagRegistered
	FlagNeedsReboot

	// this name is used for flag bits without translation
	FlagUnrecognizedName = "unrecognized device flag"
)

// FlagLookup resolves a single flag bit to its display name;
// the formatter takes it as an argument so it stays testable
// without the full flag vocabulary wired in
type FlagLookup func(f Flag) string

// Translate returns the canonical name of a single flag bit
func (f Flag) Translate() string {
	switch f {
	case FlagUnknown:
		return "unknown"
	case FlagInternal:
		return "internal"
	case FlagUpdatable:
		return "updatable"
	case FlagOnlyOffline:
		return "only-offline"
	case FlagRequireAC:
		return "require-ac"
	case FlagLocked:
		return "locked"
	case FlagSupported:
		return "supported"
	case FlagNeedsBootloader:
		return "needs-bootloader"
	case FlagRegistered:
		return "registered"
	case FlagNeedsReboot:
		return "needs-reboot"
	default:
		return FlagUnrecognizedName
	}
}

// FlagFromString resolves a canonical name back to its flag bit
func FlagFromString(name string) Flag {
	for i := 0; i < 64; i++ {
		if f := Flag(1 << uint64(i)); f.Translate() == name {
			return f
		}
	}

	return FlagUnknown
}

// FlagDictionary returns a map of flag bit values to their names
func FlagDictionary() map[uint64]string {
	dict := make(map[uint64]string)

	for bit := Flag(1 << 63); bit > 0; bit >>= 1 {
		if s := bit.Translate(); s != FlagUnrecognizedName {
			dict[uint64(bit)] = s
		}
	}

	return dict
}

// String returns a human-readable conjunction of
// pipe-separated names for every bit that is set
func (f Flag) String() string {
	s := make([]string, 0)

	for i := 0; i < 64; i++ {
		if bit := Flag(1 << uint64(i)); f&bit != 0 {
			s = append(s, bit.Translate())
		}
	}

	if len(s) == 0 {
		return FlagUnknown.Translate()
	}

	return strings.Join(s, "|")
}
