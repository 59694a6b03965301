// Package media stores uploaded images on local disk under the stable
// avatars/, categories/, products/... prefix layout and normalizes them to
// fit within the 800×800 display box before they are written.
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/mugstore/backoffice/internal/core/domain"
)

// MaxDimension is the normalization box: any image whose width or height
// exceeds it is scaled down so the larger side lands exactly on it.
const MaxDimension = 800

const jpegQuality = 85

// Normalize decodes the upload and, when either dimension exceeds
// MaxDimension, downscales it preserving aspect ratio, re-encoding in the
// original format. Images already inside the box are returned untouched.
// A payload that does not decode as JPEG or PNG fails with domain.ErrBadImage.
func Normalize(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadImage, err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= MaxDimension && h <= MaxDimension {
		return data, nil
	}

	newW, newH := fitWithin(w, h, MaxDimension)
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

	var out bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&out, dst)
	default:
		err = jpeg.Encode(&out, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// fitWithin scales (w, h) so the larger dimension equals max, preserving the
// aspect ratio. Both results are at least 1.
func fitWithin(w, h, max int) (int, int) {
	if w >= h {
		newH := h * max / w
		if newH < 1 {
			newH = 1
		}
		return max, newH
	}
	newW := w * max / h
	if newW < 1 {
		newW = 1
	}
	return newW, max
}
