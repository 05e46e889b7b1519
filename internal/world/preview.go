package world

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	previewTileWidth    = 32
	previewTileHeight   = 16
	previewBlockHeight  = 16
	previewAmbientLight = 0.2
)

type blockPreview struct {
	localX  int
	localY  int
	localZ  int
	block   Block
	screenX int
	screenY int
}

// SaveRegionPreview renders an isometric PNG of every non-air block inside
// bounds and writes it to path.
func SaveRegionPreview(grid Grid, bounds Bounds, path string) error {
	if grid == nil {
		return fmt.Errorf("grid is nil")
	}
	dim := bounds.Size()
	if dim.Width <= 0 || dim.Depth <= 0 || dim.Height <= 0 {
		return fmt.Errorf("invalid preview bounds: %+v", bounds)
	}

	width := (dim.Width+dim.Depth)*previewTileWidth/2 + previewTileWidth
	height := (dim.Width+dim.Depth)*previewTileHeight/2 + dim.Height*previewBlockHeight + previewTileHeight
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	background := color.NRGBA{R: 10, G: 10, B: 18, A: 255}
	draw.Draw(img, img.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)

	blocks := collectPreviewBlocks(grid, bounds)
	sort.Slice(blocks, func(i, j int) bool {
		bi := blocks[i]
		bj := blocks[j]
		if bi.screenY != bj.screenY {
			return bi.screenY < bj.screenY
		}
		if bi.screenX != bj.screenX {
			return bi.screenX < bj.screenX
		}
		if bi.localZ != bj.localZ {
			return bi.localZ < bj.localZ
		}
		if bi.localY != bj.localY {
			return bi.localY > bj.localY
		}
		return bi.localX < bj.localX
	})

	offsetX := dim.Depth * previewTileWidth / 2
	offsetY := dim.Height * previewBlockHeight
	for _, info := range blocks {
		renderBlockPreview(img, offsetX+info.screenX, offsetY+info.screenY, info.block)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preview directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}

func collectPreviewBlocks(grid Grid, bounds Bounds) []blockPreview {
	var blocks []blockPreview
	for x := bounds.Min.X; x <= bounds.Max.X; x++ {
		for y := bounds.Min.Y; y <= bounds.Max.Y; y++ {
			for z := bounds.Min.Z; z <= bounds.Max.Z; z++ {
				block := grid.Block(BlockCoord{X: x, Y: y, Z: z})
				if block.IsAir() || block.Type == BlockVoid {
					continue
				}
				localX := x - bounds.Min.X
				localY := y - bounds.Min.Y
				localZ := z - bounds.Min.Z
				blocks = append(blocks, blockPreview{
					localX:  localX,
					localY:  localY,
					localZ:  localZ,
					block:   block,
					screenX: (localX - localY) * previewTileWidth / 2,
					screenY: (localX+localY)*previewTileHeight/2 - localZ*previewBlockHeight,
				})
			}
		}
	}
	return blocks
}

func renderBlockPreview(img *image.NRGBA, baseX, baseY int, block Block) {
	appearance := AppearanceFor(block)
	baseColor, ok := parseHexColor(appearance.Color)
	if !ok {
		baseColor = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	}
	emission := clamp(appearance.Emission, 0, 1)

	topColor := applyLighting(baseColor, previewAmbientLight+0.4+0.6*emission)
	leftColor := applyLighting(baseColor, previewAmbientLight+0.25+0.4*emission)
	rightColor := applyLighting(baseColor, previewAmbientLight+0.15+0.3*emission)

	top := []image.Point{
		{X: baseX, Y: baseY - previewBlockHeight},
		{X: baseX + previewTileWidth/2, Y: baseY - previewBlockHeight + previewTileHeight/2},
		{X: baseX, Y: baseY - previewBlockHeight + previewTileHeight},
		{X: baseX - previewTileWidth/2, Y: baseY - previewBlockHeight + previewTileHeight/2},
	}
	left := []image.Point{
		{X: baseX - previewTileWidth/2, Y: baseY - previewBlockHeight + previewTileHeight/2},
		{X: baseX, Y: baseY - previewBlockHeight + previewTileHeight},
		{X: baseX, Y: baseY + previewTileHeight},
		{X: baseX - previewTileWidth/2, Y: baseY + previewTileHeight/2},
	}
	right := []image.Point{
		{X: baseX + previewTileWidth/2, Y: baseY - previewBlockHeight + previewTileHeight/2},
		{X: baseX, Y: baseY - previewBlockHeight + previewTileHeight},
		{X: baseX, Y: baseY + previewTileHeight},
		{X: baseX + previewTileWidth/2, Y: baseY + previewTileHeight/2},
	}

	fillPolygon(img, left, leftColor)
	fillPolygon(img, right, rightColor)
	fillPolygon(img, top, topColor)
}

func parseHexColor(value string) (color.NRGBA, bool) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(trimmed) != 6 {
		return color.NRGBA{}, false
	}
	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(trimmed[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, false
		}
		rgb[i] = uint8(v)
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, true
}

func applyLighting(base color.NRGBA, factor float64) color.NRGBA {
	factor = clamp(factor, 0, 1)
	return color.NRGBA{
		R: uint8(math.Round(float64(base.R) * factor)),
		G: uint8(math.Round(float64(base.G) * factor)),
		B: uint8(math.Round(float64(base.B) * factor)),
		A: 255,
	}
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func fillPolygon(img *image.NRGBA, pts []image.Point, col color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	bounds := img.Bounds()
	if minY < bounds.Min.Y {
		minY = bounds.Min.Y
	}
	if maxY > bounds.Max.Y-1 {
		maxY = bounds.Max.Y - 1
	}
	crossings := make([]int, 0, len(pts))
	for y := minY; y <= maxY; y++ {
		crossings = crossings[:0]
		for i := range pts {
			j := (i + 1) % len(pts)
			x1, y1 := pts[i].X, pts[i].Y
			x2, y2 := pts[j].X, pts[j].Y
			if y1 == y2 {
				continue
			}
			lo, hi := y1, y2
			if lo > hi {
				lo, hi = hi, lo
			}
			if y < lo || y >= hi {
				continue
			}
			crossings = append(crossings, x1+(y-y1)*(x2-x1)/(y2-y1))
		}
		if len(crossings) < 2 {
			continue
		}
		sort.Ints(crossings)
		for i := 0; i+1 < len(crossings); i += 2 {
			xStart, xEnd := crossings[i], crossings[i+1]
			if xEnd < bounds.Min.X || xStart >= bounds.Max.X {
				continue
			}
			if xStart < bounds.Min.X {
				xStart = bounds.Min.X
			}
			if xEnd > bounds.Max.X-1 {
				xEnd = bounds.Max.X - 1
			}
			for x := xStart; x <= xEnd; x++ {
				img.SetNRGBA(x, y, col)
			}
		}
	}
}
