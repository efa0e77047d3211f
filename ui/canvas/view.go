// Package canvas implements the document overlay canvas: coordinate
// transforms, text layout, per-frame rendering, and pointer interaction.
package canvas

import "snyfter/pkg/geometry"

const (
	minZoom  = 0.5
	maxZoom  = 3.0
	zoomStep = 1.2

	// wheelZoomFactor converts a raw wheel delta into a multiplicative
	// zoom adjustment.
	wheelZoomFactor = 0.001

	// Fixed margins leave room for the status overlay above the page.
	marginX = 20.0
	marginY = 50.0
)

// OriginConvention selects the Y axis of the incoming item model.
type OriginConvention int

const (
	// OriginTopLeft is the canonical convention: the extract shim flips
	// bottom-left input at decode time.
	OriginTopLeft OriginConvention = iota
	// OriginBottomLeft flips Y against the page height inside the
	// transform, for item models that arrive unnormalized.
	OriginBottomLeft
)

// FitStrategy selects how the fit-to-panel scale is derived.
type FitStrategy int

const (
	// FitUniform fits both dimensions, preserving aspect ratio on
	// non-Letter pages.
	FitUniform FitStrategy = iota
	// FitWidthOnly matches the page width to the panel width.
	FitWidthOnly
)

// Config collects the engine policies that used to vary between renderer
// variants.
type Config struct {
	Origin        OriginConvention
	Fit           FitStrategy
	WrapThreshold int     // rune count beyond which text becomes wrap-eligible
	WrapCapWidth  float64 // hard cap on wrapped layout width, screen px
	FallbackWidth float64 // minimum layout width for single-line text
	HitPadding    float64 // hit-rect expansion, screen px
	MaxLines      int     // layout line bound; overflow is ellipsized

	// WrapTriggers are phrases that force wrap-eligibility regardless of
	// length, for boilerplate known to run long.
	WrapTriggers []string
}

// DefaultConfig returns the canonical policy set.
func DefaultConfig() Config {
	return Config{
		Origin:        OriginTopLeft,
		Fit:           FitUniform,
		WrapThreshold: 50,
		WrapCapWidth:  400,
		FallbackWidth: 200,
		HitPadding:    3,
		MaxLines:      10,
		WrapTriggers:  []string{"must be signed"},
	}
}

// View is the per-frame transform input: panel and page geometry plus the
// user's zoom and pan.
type View struct {
	PanelSize geometry.Size
	PageSize  geometry.Size
	Zoom      float64
	Pan       geometry.Point2D
}

// FitScale returns the scale mapping document space to the panel with no
// user zoom applied.
func (v View) FitScale(cfg Config) float64 {
	if v.PageSize.Width <= 0 || v.PageSize.Height <= 0 {
		return 1
	}
	sx := v.PanelSize.Width / v.PageSize.Width
	if cfg.Fit == FitWidthOnly {
		return sx
	}
	sy := v.PanelSize.Height / v.PageSize.Height
	if sy < sx {
		return sy
	}
	return sx
}

// Scale returns the full document-to-screen scale factor.
func (v View) Scale(cfg Config) float64 {
	return v.FitScale(cfg) * v.Zoom
}

// ToScreen maps a document-space point to screen space.
func (v View) ToScreen(p geometry.Point2D, cfg Config) geometry.Point2D {
	scale := v.Scale(cfg)
	y := p.Y
	if cfg.Origin == OriginBottomLeft {
		y = v.PageSize.Height - p.Y
	}
	return geometry.Point2D{
		X: marginX + v.Pan.X + p.X*scale,
		Y: marginY + v.Pan.Y + y*scale,
	}
}

// ToDoc maps a screen-space point back to document space. It is the exact
// inverse of ToScreen.
func (v View) ToDoc(p geometry.Point2D, cfg Config) geometry.Point2D {
	scale := v.Scale(cfg)
	if scale == 0 {
		return geometry.Point2D{}
	}
	x := (p.X - marginX - v.Pan.X) / scale
	y := (p.Y - marginY - v.Pan.Y) / scale
	if cfg.Origin == OriginBottomLeft {
		y = v.PageSize.Height - y
	}
	return geometry.Point2D{X: x, Y: y}
}

// RectToScreen maps a document-space rectangle to screen space. The rect's
// top-left anchor follows the origin convention.
func (v View) RectToScreen(r geometry.Rect, cfg Config) geometry.Rect {
	scale := v.Scale(cfg)
	tl := v.ToScreen(geometry.Point2D{X: r.Left, Y: r.Top}, cfg)
	return geometry.Rect{
		Left:   tl.X,
		Top:    tl.Y,
		Width:  r.Width * scale,
		Height: r.Height * scale,
	}
}

// ClampZoom bounds a zoom value to the supported range.
func ClampZoom(zoom float64) float64 {
	if zoom < minZoom {
		return minZoom
	}
	if zoom > maxZoom {
		return maxZoom
	}
	return zoom
}

// StepZoom adjusts zoom by one discrete step in the given direction.
func StepZoom(zoom float64, in bool) float64 {
	if in {
		return ClampZoom(zoom * zoomStep)
	}
	return ClampZoom(zoom / zoomStep)
}

// WheelZoom adjusts zoom continuously from a pointer-wheel delta.
func WheelZoom(zoom, delta float64) float64 {
	return ClampZoom(zoom * (1 + delta*wheelZoomFactor))
}
