package wire

import "strings"

// result keys shared by every record kind of the service;
// spelling is fixed for wire compatibility and must not change
const (
	KeyDeviceID          = "DeviceId"
	KeyGUID              = "Guid"
	KeyName              = "Name"
	KeySummary           = "Summary"
	KeyDescription       = "Description"
	KeyVendor            = "Vendor"
	KeyHomepage          = "Homepage"
	KeyPlugin            = "Plugin"
	KeyVersion           = "Version"
	KeyVersionLowest     = "VersionLowest"
	KeyVersionBootloader = "VersionBootloader"
	KeyChecksum          = "Checksum"
	KeyFlags             = "Flags"
	KeyCreated           = "Created"
	KeyModified          = "Modified"
	KeyFlashesLeft       = "FlashesLeft"

	// release-specific keys
	KeyAppstreamID = "AppstreamId"
	KeyRemoteID    = "RemoteId"
	KeyFilename    = "Filename"
	KeyURI         = "Uri"
	KeyLicense     = "License"
	KeySize        = "Size"
)

// ListSeparator joins list-valued fields into a single string payload
// NOTE: elements containing the separator will not survive a round-trip;
// the format is kept as-is for wire compatibility
const ListSeparator = ","

// JoinList encodes an ordered list field as a single string payload
func JoinList(items []string) string {
	return strings.Join(items, ListSeparator)
}

// SplitList decodes a joined list payload back into its elements
func SplitList(payload string) []string {
	if payload == "" {
		return nil
	}

	return strings.Split(payload, ListSeparator)
}
