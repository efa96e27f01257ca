package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
)

// normalizeImage decodes raw jpeg/png/gif bytes and re-encodes them as PNG,
// returning the PNG bytes and the width/height aspect ratio. Registering only
// pre-validated PNG data keeps a corrupt upload from failing mid-render.
func normalizeImage(raw []byte) ([]byte, float64, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dy() == 0 {
		return nil, 0, fmt.Errorf("image has zero height")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, 0, fmt.Errorf("re-encode image: %w", err)
	}
	return buf.Bytes(), float64(bounds.Dx()) / float64(bounds.Dy()), nil
}
