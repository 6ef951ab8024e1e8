package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// CIDv1RawSHA256 returns the CIDv1 string ("raw" multicodec, sha2-256 multihash) of data.
// Two almanac downloads with the same CID are byte-identical.
func CIDv1RawSHA256(data []byte) (string, error) {
	id, err := CIDv1RawSHA256CID(data)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// CIDv1RawSHA256CID returns the CID of an almanac image as a cid.Cid, for
// callers that compare or decode identifiers rather than print them.
func CIDv1RawSHA256CID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}
