package almanac

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// LR1110 full almanac layout. The firmware declares the array as
// (NAlmanacs * SingleAlmanacWriteSize) + HeaderSize bytes and writes it to the
// chip one ChunkSize block at a time.
const (
	NAlmanacs              = 128
	SingleAlmanacWriteSize = 20
	HeaderSize             = 20
	ChunkSize              = 20

	FullSize = NAlmanacs*SingleAlmanacWriteSize + HeaderSize

	// crcOffset is where the header stores the global almanac CRC (little endian)
	crcOffset = 3
)

var ErrTooShort = errors.New("almanac: image too short")

// SizeError reports an image whose length does not match the declared array capacity
type SizeError struct {
	Got  int
	Want int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("almanac: image is %d bytes, declared capacity is %d", e.Got, e.Want)
}

// Image is a decoded almanac blob, opaque beyond its header CRC
type Image []byte

// CRC returns the global almanac CRC the chip reports once this image is loaded
func (img Image) CRC() (uint32, error) {
	if len(img) < crcOffset+4 {
		return 0, fmt.Errorf("%w: %d bytes, need %d for crc", ErrTooShort, len(img), crcOffset+4)
	}
	return binary.LittleEndian.Uint32(img[crcOffset : crcOffset+4]), nil
}

// Chunks splits the image into the blocks sent by a single almanac update call.
// The last chunk is shorter when the length is not a multiple of ChunkSize.
func (img Image) Chunks() [][]byte {
	chunks := make([][]byte, 0, (len(img)+ChunkSize-1)/ChunkSize)
	for start := 0; start < len(img); start += ChunkSize {
		end := min(start+ChunkSize, len(img))
		chunks = append(chunks, img[start:end])
	}
	return chunks
}

// ValidateSize checks the image against the capacity of the generated array.
// A longer image does not compile, a shorter one is silently zero padded.
func ValidateSize(img Image) error {
	if len(img) != FullSize {
		return &SizeError{Got: len(img), Want: FullSize}
	}
	return nil
}
