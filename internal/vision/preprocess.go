package vision

import (
	"image"
	"image/color"
)

// imageToFloat32CHW resizes img to targetW x targetH and converts it to CHW
// float32 in a single pass, normalising as pixel = (pixel - mean) / std.
// Direct pixel access avoids the image.Image interface overhead for the two
// most common source types produced by decode and crop.
func imageToFloat32CHW(img image.Image, targetW, targetH int, mean, std [3]float32) []float32 {
	data := make([]float32, 3*targetH*targetW)
	planeSize := targetH * targetW

	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()
	minX := bounds.Min.X
	minY := bounds.Min.Y

	switch src := img.(type) {
	case *image.RGBA:
		for y := 0; y < targetH; y++ {
			srcY := minY + y*srcH/targetH
			for x := 0; x < targetW; x++ {
				srcX := minX + x*srcW/targetW
				off := src.PixOffset(srcX, srcY)
				pix := src.Pix[off : off+3 : off+3]
				idx := y*targetW + x
				data[idx] = (float32(pix[0]) - mean[0]) / std[0]
				data[planeSize+idx] = (float32(pix[1]) - mean[1]) / std[1]
				data[2*planeSize+idx] = (float32(pix[2]) - mean[2]) / std[2]
			}
		}
	case *image.YCbCr:
		for y := 0; y < targetH; y++ {
			srcY := minY + y*srcH/targetH
			for x := 0; x < targetW; x++ {
				srcX := minX + x*srcW/targetW
				yi := src.YOffset(srcX, srcY)
				ci := src.COffset(srcX, srcY)
				r8, g8, b8 := color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
				idx := y*targetW + x
				data[idx] = (float32(r8) - mean[0]) / std[0]
				data[planeSize+idx] = (float32(g8) - mean[1]) / std[1]
				data[2*planeSize+idx] = (float32(b8) - mean[2]) / std[2]
			}
		}
	default:
		for y := 0; y < targetH; y++ {
			srcY := minY + y*srcH/targetH
			for x := 0; x < targetW; x++ {
				srcX := minX + x*srcW/targetW
				r, g, b, _ := img.At(srcX, srcY).RGBA()
				idx := y*targetW + x
				data[idx] = (float32(r>>8) - mean[0]) / std[0]
				data[planeSize+idx] = (float32(g>>8) - mean[1]) / std[1]
				data[2*planeSize+idx] = (float32(b>>8) - mean[2]) / std[2]
			}
		}
	}

	return data
}

// preprocessForDetection normalises a full frame for the RetinaFace-style detector.
func preprocessForDetection(img image.Image, targetW, targetH int) []float32 {
	return imageToFloat32CHW(img, targetW, targetH, [3]float32{127.5, 127.5, 127.5}, [3]float32{128.0, 128.0, 128.0})
}

// preprocessForLandmarks normalises a face crop for the PFLD-style landmark extractor.
func preprocessForLandmarks(img image.Image, targetW, targetH int) []float32 {
	return imageToFloat32CHW(img, targetW, targetH, [3]float32{0, 0, 0}, [3]float32{255.0, 255.0, 255.0})
}

// cropBox extracts the sub-image bounded by rect, clamped to img's bounds.
// Returns nil if the clamped rectangle is empty. The result shares the
// source's pixel buffer when the source supports SubImage.
func cropBox(img image.Image, rect image.Rectangle) image.Image {
	bounds := img.Bounds().Intersect(rect)
	if bounds.Empty() {
		return nil
	}

	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	if si, ok := img.(subImager); ok {
		return si.SubImage(bounds)
	}

	crop := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			crop.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return crop
}
