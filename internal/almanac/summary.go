package almanac

import (
	"fmt"

	"almanac/internal/cidutil"
)

// Summary describes an image the way the firmware sees it
type Summary struct {
	Size      int    `json:"size"`
	FullSize  int    `json:"full_size"`
	Chunks    int    `json:"chunks"`
	CRC       string `json:"crc,omitempty"`
	CID       string `json:"cid"`
	SizeMatch bool   `json:"size_match"`
}

// Summarize computes the image summary. CRC is left empty when the image is too short to carry one.
func Summarize(img Image) (Summary, error) {
	id, err := cidutil.CIDv1RawSHA256(img)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Size:      len(img),
		FullSize:  FullSize,
		Chunks:    len(img.Chunks()),
		CID:       id,
		SizeMatch: ValidateSize(img) == nil,
	}
	if crc, err := img.CRC(); err == nil {
		s.CRC = fmt.Sprintf("0x%08X", crc)
	}
	return s, nil
}
