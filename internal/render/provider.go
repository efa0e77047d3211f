// Package render defines the raster provider the shell uses for the
// background page image. The overlay engine's correctness never depends on
// it; a provider that cannot rasterize simply yields a blank page.
package render

import (
	"context"
	"image"
	"image/draw"

	"snyfter/pkg/colorutil"
)

// Provider yields a pixel buffer for a given page index and target size.
// Implementations wrap an external rasterizer (pdfium, poppler, ...).
type Provider interface {
	RenderPage(ctx context.Context, pageIndex int, target image.Point) (image.Image, error)
}

// BlankProvider renders a plain white page at the requested size. It is
// the default when no rasterizer is wired in.
type BlankProvider struct{}

// RenderPage implements Provider.
func (BlankProvider) RenderPage(_ context.Context, _ int, target image.Point) (image.Image, error) {
	if target.X < 1 {
		target.X = 1
	}
	if target.Y < 1 {
		target.Y = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, target.X, target.Y))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorutil.White), image.Point{}, draw.Src)
	return img, nil
}
