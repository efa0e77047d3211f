// Package colorutil provides shared colors for the snyfter overlay canvas.
package colorutil

import "image/color"

// Common overlay colors used throughout the application.
var (
	Black    = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	PageGray = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	Backdrop = color.RGBA{R: 45, G: 45, B: 48, A: 255} // behind the page

	// Text colors by item role.
	Ink       = color.RGBA{R: 20, G: 20, B: 20, A: 255}   // body text
	LabelBlue = color.RGBA{R: 0, G: 0, B: 139, A: 255}    // form labels
	FieldGray = color.RGBA{R: 60, G: 60, B: 60, A: 255}   // form fields
	CheckInk  = color.RGBA{R: 40, G: 40, B: 40, A: 255}   // checkboxes
	Accent    = color.RGBA{R: 0, G: 100, B: 200, A: 255}  // titles and headers
	Teal      = color.RGBA{R: 26, G: 188, B: 156, A: 255} // toast / branding

	// Search highlighting.
	MatchOrange = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	Highlight   = color.RGBA{R: 255, G: 255, B: 0, A: 60}

	// Interaction feedback.
	HoverBlue = color.RGBA{R: 59, G: 130, B: 246, A: 255}
	GuideBlue = color.RGBA{R: 59, G: 130, B: 246, A: 60}

	// Status line grays.
	StatusGray = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	HoverGray  = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	HintGray   = color.RGBA{R: 120, G: 120, B: 120, A: 255}
)

// Blend mixes src over dst at the given opacity (0..1), ignoring alpha
// channels in the inputs.
func Blend(dst, src color.RGBA, opacity float64) color.RGBA {
	if opacity <= 0 {
		return dst
	}
	if opacity >= 1 {
		return src
	}
	inv := 1 - opacity
	return color.RGBA{
		R: uint8(float64(src.R)*opacity + float64(dst.R)*inv),
		G: uint8(float64(src.G)*opacity + float64(dst.G)*inv),
		B: uint8(float64(src.B)*opacity + float64(dst.B)*inv),
		A: 255,
	}
}
