package display

import (
	_ "embed"
	"image"
	"image/color"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// Badge shown on sensitive story screens: a reminder that the content on
// screen is worth shielding from cameras and shoulder surfers.
//
//go:embed icons/eye.svg
var iconEyeSVG string

// rasterizeSVG renders SVG content into a square RGBA image. On parse
// failure it returns a transparent image so rendering can proceed.
func rasterizeSVG(svgContent string, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.Transparent}, image.Point{}, draw.Src)

	icon, err := oksvg.ReadIconStream(strings.NewReader(svgContent))
	if err != nil {
		return img
	}

	icon.SetTarget(0, 0, float64(size), float64(size))

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	return img
}
