package util

import (
	"hash/crc32"

	"github.com/cespare/xxhash"
)

// HashKey produces a xxhash digest from a given byte slice
// NOTE: https://github.com/cespare/xxhash for more details
func HashKey(payload []byte) uint64 {
	return xxhash.Sum64(payload)
}

// HashKeyString is a convenience wrapper around HashKey
func HashKeyString(payload string) uint64 {
	return xxhash.Sum64String(payload)
}

// HashCRC32 produces a CRC32 checksum from a given payload
func HashCRC32(payload []byte) uint32 {
	return crc32.ChecksumIEEE(payload)
}
