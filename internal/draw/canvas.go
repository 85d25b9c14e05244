package draw

import (
	"image"
	"image/color"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ANSI SGR sequences used by the renderer.
const (
	sgrReset     = "\033[0m"
	sgrDefaultBg = "\033[49m"
)

// circleSegments is the polygon resolution used for circles and ellipses.
const circleSegments = 20

// Canvas is a colour drawing buffer with 2x vertical resolution using
// half-block characters. Supports scaling from logical coordinates to
// actual terminal pixels. Canvas implements Surface.
type Canvas struct {
	termWidth      int          // Actual terminal columns
	termHeight     int          // Actual terminal rows
	subPixelHeight int          // termHeight * 2
	pixels         []color.RGBA // Flat slice: [y * termWidth + x], A == 0 means empty

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area inside a larger terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	sprites   map[SpriteKind]*sprite
	fallbacks map[SpriteKind]color.RGBA

	texts  []textOverlay
	notice []string

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder // Buffer for batching render output
	numBuf          [20]byte        // Scratch buffer for integer formatting
	scaledBuf       []Point         // Reusable buffer for fillPolygon scaled points
	intersectionBuf []float64       // Reusable buffer for scanline intersections
	polygonBuf      []Point         // Reusable buffer for polygon point generation
}

// textOverlay is a string placed at a 1-based terminal position.
type textOverlay struct {
	col, row int
	value    string
}

// Ensure Canvas satisfies Surface.
var _ Surface = (*Canvas)(nil)

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	subPixelHeight := termHeight * 2
	return &Canvas{
		termWidth:      termWidth,
		termHeight:     termHeight,
		subPixelHeight: subPixelHeight,
		pixels:         make([]color.RGBA, subPixelHeight*termWidth),
		logicalWidth:   logicalWidth,
		logicalHeight:  logicalHeight,
		scaleX:         float64(termWidth) / logicalWidth,
		scaleY:         float64(subPixelHeight) / logicalHeight,
		sprites:        make(map[SpriteKind]*sprite),
		fallbacks:      make(map[SpriteKind]color.RGBA),
	}
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]color.RGBA, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	// Update scale factors
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// SetSprite registers the image drawn for kind. A nil image removes it.
func (c *Canvas) SetSprite(kind SpriteKind, img image.Image) {
	if img == nil {
		delete(c.sprites, kind)
		return
	}
	c.sprites[kind] = &sprite{src: img}
}

// Clear resets all pixels, text overlays and the notice.
func (c *Canvas) Clear() {
	clear(c.pixels)
	c.texts = c.texts[:0]
	c.notice = nil
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col color.RGBA) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// pixelAt returns the pixel at terminal coordinates; used by tests.
func (c *Canvas) pixelAt(x, y int) color.RGBA {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return color.RGBA{}
	}
	return c.pixels[y*c.termWidth+x]
}

// Plot sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) Plot(x, y float64, col color.RGBA) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	c.setPixel(px, py, col)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col color.RGBA) {
	// Scale to pixel coordinates for drawing
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, filled bool, col color.RGBA) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, col)
	}

	// Draw outline
	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []Point, col color.RGBA) {
	// Reuse or grow scaled points buffer
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	// Scale points to pixel coordinates
	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	// Find bounding box in pixel space
	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	// Scanline fill in pixel space
	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		// Reuse intersection buffer
		intersections := c.intersectionBuf[:0]

		// Find intersections with all edges
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// ellipse fills the polygon buffer with an ellipse outline in logical coordinates.
func (c *Canvas) ellipse(cx, cy, rx, ry float64) []Point {
	points := c.BorrowPoints(circleSegments)
	for i := range points {
		a := float64(i) * 2 * math.Pi / circleSegments
		points[i] = Point{X: cx + math.Cos(a)*rx, Y: cy + math.Sin(a)*ry}
	}
	return points
}

// FillCircle draws a filled circle. Circles smaller than a terminal pixel
// still light their centre pixel.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.RGBA) {
	c.DrawPolygon(c.ellipse(cx, cy, r, r), true, col)
	c.Plot(cx, cy, col)
}

// SetSpriteColor sets the colour of the placeholder drawn when kind has no image.
func (c *Canvas) SetSpriteColor(kind SpriteKind, col color.RGBA) {
	c.fallbacks[kind] = col
}

// DrawSprite draws the sprite image for kind scaled into a w*h box centred on
// (cx, cy). Without an image a filled ellipse in the placeholder colour is drawn.
func (c *Canvas) DrawSprite(kind SpriteKind, cx, cy, w, h float64) {
	sp, ok := c.sprites[kind]
	if !ok {
		col, ok := c.fallbacks[kind]
		if !ok {
			col = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		c.DrawPolygon(c.ellipse(cx, cy, w/2, h/2), true, col)
		return
	}

	x0 := int(math.Round((cx - w/2) * c.scaleX))
	y0 := int(math.Round((cy - h/2) * c.scaleY))
	pw := max(int(math.Round(w*c.scaleX)), 1)
	ph := max(int(math.Round(h*c.scaleY)), 1)

	img := sp.scaledTo(pw, ph)
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			p := img.NRGBAAt(x, y)
			if p.A < alphaThreshold {
				continue
			}
			c.setPixel(x0+x, y0+y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
}

// DrawText places s at the terminal cell containing the logical point (x, y).
func (c *Canvas) DrawText(x, y float64, s string) {
	col, row := c.LogicalToTerminal(x, y)
	// Logical baselines closer than one terminal row would overwrite each other.
	for _, t := range c.texts {
		if t.row == row && t.col == col {
			row++
		}
	}
	c.texts = append(c.texts, textOverlay{col: col, row: row, value: s})
}

// DrawNotice sets a message box drawn centred over the canvas.
func (c *Canvas) DrawNotice(lines []string) {
	c.notice = lines
}

// writeColor appends an SGR truecolor sequence; base is 38 (fg) or 48 (bg).
func (c *Canvas) writeColor(base int, col color.RGBA) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(base), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.R), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.G), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.B), 10))
	c.renderBuf.WriteByte('m')
}

// moveCursor appends an ANSI cursor position sequence for a 1-based canvas cell.
func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+c.offsetRow), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+c.offsetCol), 10))
	c.renderBuf.WriteByte('H')
}

// Render outputs the canvas to the writer using coloured half-block characters,
// followed by text overlays and the notice. Every cell is rewritten, so the
// terminal never needs a full clear between frames.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 4)

	var fg, bg color.RGBA
	fgSet, bgSet := false, false

	for row := 0; row < c.termHeight; row++ {
		c.moveCursor(1, row+1)
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			var ch rune
			var wantFg, wantBg color.RGBA
			useBg := false
			switch {
			case top.A == 0 && bottom.A == 0:
				ch = ' '
			case bottom.A == 0:
				ch, wantFg = BlockUpperHalf, top
			case top.A == 0:
				ch, wantFg = BlockLowerHalf, bottom
			case top == bottom:
				ch, wantFg = BlockFull, top
			default:
				ch, wantFg, wantBg, useBg = BlockUpperHalf, top, bottom, true
			}

			if ch != ' ' && (!fgSet || fg != wantFg) {
				c.writeColor(38, wantFg)
				fg, fgSet = wantFg, true
			}
			if useBg {
				if !bgSet || bg != wantBg {
					c.writeColor(48, wantBg)
					bg, bgSet = wantBg, true
				}
			} else if bgSet {
				c.renderBuf.WriteString(sgrDefaultBg)
				bgSet = false
			}
			c.renderBuf.WriteRune(ch)
		}
	}
	c.renderBuf.WriteString(sgrReset)

	for _, t := range c.texts {
		c.renderText(t)
	}
	c.renderNotice()

	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

// renderText writes a text overlay clipped to the canvas area.
func (c *Canvas) renderText(t textOverlay) {
	if t.row < 1 || t.row > c.termHeight || t.col > c.termWidth {
		return
	}
	col := max(t.col, 1)
	value := t.value
	if room := c.termWidth - col + 1; len(value) > room {
		value = value[:room]
	}
	c.moveCursor(col, t.row)
	c.renderBuf.WriteString(value)
}

// renderNotice draws the notice as a rounded box centred on the canvas.
func (c *Canvas) renderNotice() {
	if len(c.notice) == 0 {
		return
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 3).
		Align(lipgloss.Center).
		Render(strings.Join(c.notice, "\n"))

	lines := strings.Split(box, "\n")
	width := lipgloss.Width(box)
	startCol := max((c.termWidth-width)/2+1, 1)
	startRow := max((c.termHeight-len(lines))/2+1, 1)
	for i, line := range lines {
		if startRow+i > c.termHeight {
			break
		}
		c.moveCursor(startCol, startRow+i)
		c.renderBuf.WriteString(line)
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// is larger than the canvas on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			buf.WriteString(cursorTo(left, top) + "┌" + line + "┐")
			buf.WriteString(cursorTo(left, bottom) + "└" + line + "┘")
		} else {
			buf.WriteString(cursorTo(c.offsetCol+1, top) + line)
			buf.WriteString(cursorTo(c.offsetCol+1, bottom) + line)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row < c.offsetRow+c.termHeight+1; row++ {
			buf.WriteString(cursorTo(left, row) + "│" + cursorTo(right, row) + "│")
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// cursorTo returns the ANSI sequence moving to a 1-based terminal position.
func cursorTo(col, row int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the canvas width in terminal columns.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas height in terminal rows.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas cell (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
// This avoids per-frame allocations for polygon rendering.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
