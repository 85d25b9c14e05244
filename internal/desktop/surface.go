package desktop

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tomz197/ballrush/internal/draw"
	"golang.org/x/image/font/basicfont"
)

var (
	backgroundColor = color.RGBA{R: 0x1b, G: 0x1b, B: 0x2f, A: 0xff}
	textColor       = color.White
	overlayColor    = color.RGBA{A: 0x99}
	noticeColor     = color.RGBA{R: 0x2b, G: 0x2b, B: 0x45, A: 0xf0}
	noticeBorder    = color.RGBA{R: 0xf8, G: 0xa8, B: 0xd8, A: 0xff}
)

// Notice box layout in pixels.
const (
	noticePadX   = 24
	noticePadY   = 18
	noticeLineH  = 20
	glyphAdvance = 7 // basicfont.Face7x13 is monospaced
)

// Surface draws onto an ebiten image in logical canvas coordinates.
// The window layout equals the canvas, so no scaling is needed.
type Surface struct {
	target    *ebiten.Image
	sprites   map[draw.SpriteKind]*ebiten.Image
	fallbacks map[draw.SpriteKind]color.RGBA
}

// Ensure Surface satisfies draw.Surface.
var _ draw.Surface = (*Surface)(nil)

// NewSurface creates a surface with the given sprites and placeholder colours.
func NewSurface(sprites map[draw.SpriteKind]*ebiten.Image, fallbacks map[draw.SpriteKind]color.RGBA) *Surface {
	if sprites == nil {
		sprites = make(map[draw.SpriteKind]*ebiten.Image)
	}
	return &Surface{sprites: sprites, fallbacks: fallbacks}
}

// setTarget points the surface at this frame's screen.
func (s *Surface) setTarget(screen *ebiten.Image) {
	s.target = screen
}

// Clear fills the frame with the background colour.
func (s *Surface) Clear() {
	s.target.Fill(backgroundColor)
}

// DrawSprite draws the image for kind scaled into a w*h box centred on (cx, cy).
// Without an image it draws a filled circle in the placeholder colour.
func (s *Surface) DrawSprite(kind draw.SpriteKind, cx, cy, w, h float64) {
	img, ok := s.sprites[kind]
	if !ok {
		s.FillCircle(cx, cy, min(w, h)/2, s.fallbacks[kind])
		return
	}

	bounds := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(bounds.Dx()), h/float64(bounds.Dy()))
	op.GeoM.Translate(cx-w/2, cy-h/2)
	op.Filter = ebiten.FilterLinear
	s.target.DrawImage(img, op)
}

// FillCircle draws an antialiased filled circle.
func (s *Surface) FillCircle(cx, cy, r float64, c color.RGBA) {
	vector.DrawFilledCircle(s.target, float32(cx), float32(cy), float32(r), c, true)
}

// Plot draws a 2x2 dot.
func (s *Surface) Plot(x, y float64, c color.RGBA) {
	vector.DrawFilledRect(s.target, float32(x-1), float32(y-1), 2, 2, c, false)
}

// DrawText draws str with its baseline at (x, y).
func (s *Surface) DrawText(x, y float64, str string) {
	text.Draw(s.target, str, basicfont.Face7x13, int(x), int(y), textColor)
}

// DrawNotice dims the frame and draws the lines in a centred box.
func (s *Surface) DrawNotice(lines []string) {
	b := s.target.Bounds()
	vector.DrawFilledRect(s.target, 0, 0, float32(b.Dx()), float32(b.Dy()), overlayColor, false)

	box := noticeRect(b.Dx(), b.Dy(), lines)
	x, y := float32(box.Min.X), float32(box.Min.Y)
	w, h := float32(box.Dx()), float32(box.Dy())
	vector.DrawFilledRect(s.target, x, y, w, h, noticeColor, true)
	vector.StrokeRect(s.target, x, y, w, h, 2, noticeBorder, true)

	for i, line := range lines {
		lineX := box.Min.X + (box.Dx()-len(line)*glyphAdvance)/2
		lineY := box.Min.Y + noticePadY + (i+1)*noticeLineH - 6
		text.Draw(s.target, line, basicfont.Face7x13, lineX, lineY, textColor)
	}
}

// noticeRect sizes the notice box to its longest line and centres it.
func noticeRect(screenW, screenH int, lines []string) image.Rectangle {
	widest := 0
	for _, line := range lines {
		widest = max(widest, len(line))
	}
	w := widest*glyphAdvance + 2*noticePadX
	h := len(lines)*noticeLineH + 2*noticePadY

	x := (screenW - w) / 2
	y := (screenH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}
