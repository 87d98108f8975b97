package upscaler

import (
	"context"
	"image"

	"golang.org/x/image/draw"
)

// resampleEngine upsamples in process with a Catmull-Rom kernel.
type resampleEngine struct{}

// NewResampleEngine returns the in-process [Engine].
func NewResampleEngine() Engine {
	return resampleEngine{}
}

func (resampleEngine) Name() string {
	return "resample"
}

func (resampleEngine) Upsample(ctx context.Context, img image.Image) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*Factor, b.Dy()*Factor))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	return dst, nil
}
