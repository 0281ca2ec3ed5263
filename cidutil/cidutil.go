// Package cidutil derives content identifiers and digests for resource payloads.
package cidutil

import (
	"encoding/hex"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// CIDv1RawSHA256 returns a CIDv1 string using the "raw" multicodec
// and a sha2-256 multihash.
func CIDv1RawSHA256(data []byte) string {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		// unreachable for SHA2_256 with default length
		return ""
	}
	return cid.NewCidV1(cid.Raw, sum).String()
}

// SHA256Hex returns the lowercase hex sha2-256 digest of data, the form
// cheqd records in resource metadata.
func SHA256Hex(data []byte) string {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return ""
	}
	dec, err := multihash.Decode(sum)
	if err != nil {
		return ""
	}
	return hex.EncodeToString(dec.Digest)
}

// IsSHA256Hex reports whether s looks like a hex sha2-256 digest.
func IsSHA256Hex(s string) bool {
	if len(s) != 64 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// MatchChecksum compares data against a ledger checksum.
//
// checked is false when the checksum is not a sha2-256 hex digest; such
// checksums are left alone.
func MatchChecksum(data []byte, checksum string) (checked, ok bool) {
	if !IsSHA256Hex(checksum) {
		return false, false
	}
	return true, strings.EqualFold(SHA256Hex(data), checksum)
}
