package astrovideo

import (
	"image"
	"image/png"
	"io"
)

// WriteFramePNG decodes one frame with the codec matching the source's
// color coding and writes it as a PNG.
func WriteFramePNG(v Video, index int, w io.Writer) error {
	width, height, pixels, err := CodecFor(v).Decode(v, index)
	if err != nil {
		return err
	}
	img := image.NewNRGBA(image.Rect(0, 0, int(width), int(height)))
	// Decoded buffers are BGRA; image.NRGBA wants RGBA.
	for i := 0; i+3 < len(pixels); i += 4 {
		img.Pix[i] = pixels[i+2]
		img.Pix[i+1] = pixels[i+1]
		img.Pix[i+2] = pixels[i]
		img.Pix[i+3] = pixels[i+3]
	}
	return png.Encode(w, img)
}
