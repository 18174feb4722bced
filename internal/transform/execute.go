package transform

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// Execute applies t to src and returns an RGBA canvas of exactly
// t.TargetDimensions, with every pixel's alpha forced to 255: rotate about
// the image centre, crop to the planned region, then resize (stretching
// directly when the crop is already close to the target aspect ratio, or
// padding to that ratio first when it is not) to the exact target size.
func Execute(src image.Image, t PivTransform) *image.RGBA {
	rotated := rotate(src, t.RotationDegrees)

	bounds := rotated.Bounds()
	cropBox := t.CropRegion.ToPixels(float64(bounds.Dx()), float64(bounds.Dy()))
	cropped := imaging.Crop(rotated, image.Rect(
		bounds.Min.X+int(cropBox.X),
		bounds.Min.Y+int(cropBox.Y),
		bounds.Min.X+int(cropBox.X+cropBox.Width),
		bounds.Min.Y+int(cropBox.Y+cropBox.Height),
	))

	padded := padToAspect(cropped, t.TargetDimensions)
	resized := resizeBilinear(padded, t.TargetDimensions)
	return forceOpaque(resized)
}

// rotate spins src by degrees (clockwise, image-space convention) about its
// centre, filling any exposed background in opaque black.
func rotate(src image.Image, degrees float64) image.Image {
	if degrees == 0 {
		return src
	}
	return imaging.Rotate(src, -degrees, color.NRGBA{A: 255})
}

// padToAspect pads img with opaque black, centred, so its aspect ratio
// matches target before the final resize. Images already within 1% of the
// target aspect ratio are left untouched and stretched directly instead.
func padToAspect(img image.Image, target ImageDimensions) image.Image {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	wantAspect := float64(target.Width) / float64(target.Height)
	gotAspect := w / h

	delta := (gotAspect - wantAspect) / wantAspect
	if delta < 0 {
		delta = -delta
	}
	if delta <= 0.01 {
		return img
	}

	var padW, padH int
	if gotAspect > wantAspect {
		padW = b.Dx()
		padH = int(w / wantAspect)
	} else {
		padH = b.Dy()
		padW = int(h * wantAspect)
	}

	canvas := imaging.New(padW, padH, color.NRGBA{A: 255})
	offsetX := (padW - b.Dx()) / 2
	offsetY := (padH - b.Dy()) / 2
	return imaging.Paste(canvas, img, image.Pt(offsetX, offsetY))
}

// resizeBilinear scales img to exactly target.Width x target.Height using
// bilinear sampling.
func resizeBilinear(img image.Image, target ImageDimensions) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, target.Width, target.Height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// forceOpaque sets every pixel's alpha channel to 255 in place and returns
// the same image; every canvas the executor emits must be fully opaque.
func forceOpaque(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+3] = 255
		}
	}
	return img
}
