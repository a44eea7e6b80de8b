package texture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"

	"github.com/ftrvxmtrx/tga"
)

const (
	tgaHeaderSize = 18
	tgaFooterSize = 26 // TGA 2.0 footer, probed from the end of every file
)

// DecodeTGA decodes a TGA image. TGA has no signature, so it is only ever
// chosen by file extension or as the last resort of sniffing.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("tga: header needs %d bytes, got %d", tgaHeaderSize, len(data))
	}
	if need, ok := tgaRawSize(data); ok && len(data) < need {
		return nil, fmt.Errorf("tga: pixel data needs %d bytes, got %d", need, len(data))
	}
	// Files smaller than a footer cannot be probed for one.
	if len(data) < tgaHeaderSize+tgaFooterSize {
		padded := make([]byte, tgaHeaderSize+tgaFooterSize)
		copy(padded, data)
		data = padded
	}
	img, err := tga.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("tga: %w", err)
	}
	return ToRGBA(img), nil
}

// tgaRawSize returns the smallest file that holds the header, image id,
// color map and pixels of an uncompressed image. RLE images report false.
func tgaRawSize(h []byte) (int, bool) {
	kind := h[2]
	if kind&0x08 != 0 {
		return 0, false
	}
	size := tgaHeaderSize + int(h[0])
	if kind&0x03 == 1 {
		entry := (int(h[7]) + 1) >> 3
		size += entry * int(binary.LittleEndian.Uint16(h[5:]))
	}
	width := int(binary.LittleEndian.Uint16(h[12:]))
	height := int(binary.LittleEndian.Uint16(h[14:]))
	return size + width*height*(int(h[16])>>3), true
}
