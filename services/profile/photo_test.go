package profile

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"testing"

	userRepo "roomly/database/repository/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes renders a w x h gradient image so resampling has real content.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestProcessPhotoOutputShape(t *testing.T) {
	out, err := ProcessPhoto(pngBytes(t, 800, 600), PhotoOptions{})
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, PhotoSize, img.Bounds().Dx())
	assert.Equal(t, PhotoSize, img.Bounds().Dy())
}

func TestProcessPhotoSmallSource(t *testing.T) {
	// Smaller than the target size still scales up to the fixed output.
	out, err := ProcessPhoto(pngBytes(t, 64, 64), PhotoOptions{})
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, PhotoSize, img.Bounds().Dx())
	assert.Equal(t, PhotoSize, img.Bounds().Dy())
}

func TestProcessPhotoExplicitCrop(t *testing.T) {
	out, err := ProcessPhoto(pngBytes(t, 800, 600), PhotoOptions{CropX: 100, CropY: 50, CropSize: 300})
	require.NoError(t, err)
	img := decodeJPEG(t, out)
	assert.Equal(t, PhotoSize, img.Bounds().Dx())
}

func TestProcessPhotoRejectsNonImage(t *testing.T) {
	_, err := ProcessPhoto([]byte("definitely not an image payload"), PhotoOptions{})
	assert.ErrorIs(t, err, ErrNotAnImage)

	_, err = ProcessPhoto(nil, PhotoOptions{})
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestProcessPhotoBrightness(t *testing.T) {
	src := pngBytes(t, 200, 200)

	dark, err := ProcessPhoto(src, PhotoOptions{Brightness: 0.5})
	require.NoError(t, err)
	bright, err := ProcessPhoto(src, PhotoOptions{Brightness: 1.5})
	require.NoError(t, err)

	darkImg := decodeJPEG(t, dark)
	brightImg := decodeJPEG(t, bright)

	dr, dg, db, _ := darkImg.At(200, 200).RGBA()
	br, bg, bb, _ := brightImg.At(200, 200).RGBA()
	assert.Less(t, dr+dg+db, br+bg+bb)
}

func TestCropRectClamping(t *testing.T) {
	bounds := image.Rect(0, 0, 800, 600)

	// Defaults to the largest centered square.
	r := cropRect(bounds, PhotoOptions{})
	assert.Equal(t, image.Rect(100, 0, 700, 600), r)

	// Oversized requests shrink to fit.
	r = cropRect(bounds, PhotoOptions{CropSize: 10_000})
	assert.Equal(t, 600, r.Dx())

	// Regions hanging off the edge slide back inside.
	r = cropRect(bounds, PhotoOptions{CropX: 700, CropY: 500, CropSize: 300})
	assert.Equal(t, image.Rect(500, 300, 800, 600), r)

	r = cropRect(bounds, PhotoOptions{CropX: -50, CropY: -50, CropSize: 300})
	assert.Equal(t, image.Rect(0, 0, 300, 300), r)
}

// fakeStorage records uploads in place of Cloudinary.
type fakeStorage struct {
	lastFolder string
	lastID     string
	lastBytes  []byte
	fail       bool
}

func (f *fakeStorage) UploadImage(_ context.Context, r io.Reader, destFolder, publicID string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("storage offline")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.lastFolder = destFolder
	f.lastID = publicID
	f.lastBytes = data
	return "https://cdn.example.com/" + destFolder + "/" + publicID + ".jpg", nil
}

func (f *fakeStorage) DeleteImage(context.Context, string) error { return nil }

func TestUploadPhoto(t *testing.T) {
	store := &fakeStorage{}
	svc := &DefaultProfileService{Repo: userRepo.NewMemoryUserRepo(), Storage: store}

	url, err := svc.UploadPhoto(context.Background(), "user-1", pngBytes(t, 500, 500), PhotoOptions{})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/profile-photos/user-1.jpg", url)
	assert.Equal(t, "profile-photos", store.lastFolder)
	assert.Equal(t, "user-1", store.lastID)

	// What reached storage is the processed 400x400 JPEG, not the original.
	img := decodeJPEG(t, store.lastBytes)
	assert.Equal(t, PhotoSize, img.Bounds().Dx())
}

func TestUploadPhotoFailuresLeaveProfileUntouched(t *testing.T) {
	store := &fakeStorage{fail: true}
	svc := &DefaultProfileService{Repo: userRepo.NewMemoryUserRepo(), Storage: store}
	ctx := context.Background()

	_, err := svc.UploadPhoto(ctx, "user-1", pngBytes(t, 500, 500), PhotoOptions{})
	assert.Error(t, err)

	_, err = svc.UploadPhoto(ctx, "user-1", []byte("garbage"), PhotoOptions{})
	assert.ErrorIs(t, err, ErrNotAnImage)
	assert.Nil(t, store.lastBytes)
}
