package profile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"strings"

	// Registered decoders for the accepted upload formats.
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

// ErrNotAnImage rejects uploads whose payload is not a decodable image.
var ErrNotAnImage = errors.New("file must be an image")

const (
	// PhotoSize is the fixed square output dimension.
	PhotoSize = 400
	// JPEGQuality is the encode quality of the processed photo.
	JPEGQuality = 90

	// BrightnessMin and BrightnessMax bound the display-time brightness
	// multiplier.
	BrightnessMin = 0.5
	BrightnessMax = 1.5
)

// PhotoOptions carries the user-chosen crop region and brightness. A zero
// CropSize means the largest centered square; brightness 0 means unchanged.
type PhotoOptions struct {
	CropX      int     `json:"cropX" form:"cropX"`
	CropY      int     `json:"cropY" form:"cropY"`
	CropSize   int     `json:"cropSize" form:"cropSize"`
	Brightness float64 `json:"brightness" form:"brightness"`
}

func clampBrightness(b float64) float64 {
	if b == 0 {
		return 1.0
	}
	if b < BrightnessMin {
		return BrightnessMin
	}
	if b > BrightnessMax {
		return BrightnessMax
	}
	return b
}

// cropRect resolves the requested square crop against the image bounds. The
// region is clamped so it always lies fully inside the source.
func cropRect(bounds image.Rectangle, opts PhotoOptions) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	size := opts.CropSize
	maxSize := w
	if h < w {
		maxSize = h
	}
	if size <= 0 || size > maxSize {
		size = maxSize
	}

	x, y := opts.CropX, opts.CropY
	if opts.CropSize <= 0 {
		// Centered square when no region was chosen.
		x = (w - size) / 2
		y = (h - size) / 2
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x+size > w {
		x = w - size
	}
	if y+size > h {
		y = h - size
	}
	return image.Rect(bounds.Min.X+x, bounds.Min.Y+y, bounds.Min.X+x+size, bounds.Min.Y+y+size)
}

func scaleChannel(v uint8, factor float64) uint8 {
	scaled := float64(v) * factor
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

// ProcessPhoto validates the payload, applies the crop region and brightness
// multiplier, and renders the fixed 400x400 JPEG output.
func ProcessPhoto(data []byte, opts PhotoOptions) ([]byte, error) {
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return nil, ErrNotAnImage
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrNotAnImage
	}

	region := cropRect(src.Bounds(), opts)
	out := image.NewRGBA(image.Rect(0, 0, PhotoSize, PhotoSize))
	draw.BiLinear.Scale(out, out.Bounds(), src, region, draw.Src, nil)

	factor := clampBrightness(opts.Brightness)
	if factor != 1.0 {
		b := out.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := out.RGBAAt(x, y)
				out.SetRGBA(x, y, color.RGBA{
					R: scaleChannel(c.R, factor),
					G: scaleChannel(c.G, factor),
					B: scaleChannel(c.B, factor),
					A: c.A,
				})
			}
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode photo: %w", err)
	}
	return buf.Bytes(), nil
}

// UploadPhoto processes the photo and hands the result to the storage
// collaborator. A processing or upload failure returns before any profile
// field is touched, so the original image stays selectable for retry.
func (s *DefaultProfileService) UploadPhoto(ctx context.Context, userID string, data []byte, opts PhotoOptions) (string, error) {
	processed, err := ProcessPhoto(data, opts)
	if err != nil {
		return "", err
	}
	url, err := s.Storage.UploadImage(ctx, bytes.NewReader(processed), "profile-photos", userID)
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}
	return url, nil
}
