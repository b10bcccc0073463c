package rasterizer

import (
	"image"
	"labreport-service/internal/pkg/exceptions"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

// GenerateQRCode renders content as a square QR code of size pixels.
func GenerateQRCode(content string, size int) (image.Image, error) {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, exceptions.ErrGenerateQRCode(err)
	}
	return code.Image(size), nil
}

// fitSquare resamples img to a size x size square. Nearest neighbour keeps the
// module edges sharp.
func fitSquare(img image.Image, size int) image.Image {
	if img.Bounds().Dx() == size && img.Bounds().Dy() == size {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
