package freight

import (
	"math"
)

// SizeProfile is the derived physical profile of a package: dimensions
// and raw weight after minimum-size flooring, plus the configured extra
// weight additive.
type SizeProfile struct {
	Height float64
	Width  float64
	Length float64

	// Weight is the raw contents weight, before any volumetric rule.
	Weight float64

	// ExtraWeight is the per-method additive applied when no volumetric
	// rule is in effect.
	ExtraWeight float64
}

// SizePackage derives the package dimensions and raw weight from the
// cart contents and floors every dimension against the method's
// configured minimum. Items with zero or negative quantity, or that do
// not require shipping, are skipped. Absent dimensions count as zero
// before flooring.
//
// With a single physical item the item's own dimensions are used. With
// several, the total cubage is redistributed into a cube, which is how
// the carrier expects mixed contents to be measured.
func SizePackage(pkg Package, cfg MethodConfig) SizeProfile {
	var (
		weight float64
		cubage float64
		count  int
		height float64
		width  float64
		length float64
	)

	for _, item := range pkg.Items {
		if item.Quantity <= 0 || !item.NeedsShipping {
			continue
		}
		qty := float64(item.Quantity)
		weight += item.Weight * qty
		cubage += item.Height * item.Width * item.Length * qty
		count += item.Quantity
		height = item.Height
		width = item.Width
		length = item.Length
	}

	if count != 1 {
		side := math.Cbrt(cubage)
		height, width, length = side, side, side
	}

	return SizeProfile{
		Height:      math.Max(height, cfg.MinHeight),
		Width:       math.Max(width, cfg.MinWidth),
		Length:      math.Max(length, cfg.MinLength),
		Weight:      weight,
		ExtraWeight: cfg.ExtraWeight,
	}
}
