package draw

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var (
	gold = color.RGBA{R: 255, G: 215, A: 255}
	red  = color.RGBA{R: 255, A: 255}
)

func TestFillCircleSetsCentre(t *testing.T) {
	// 80x60 terminal cells for an 80x120 logical canvas: 1 logical unit per pixel.
	c := NewScaledCanvas(80, 60, 80, 120)
	c.FillCircle(40, 60, 5, gold)

	if got := c.pixelAt(40, 60); got != gold {
		t.Errorf("centre pixel = %v, want %v", got, gold)
	}
	if got := c.pixelAt(43, 60); got != gold {
		t.Errorf("pixel inside radius = %v, want %v", got, gold)
	}
	if got := c.pixelAt(50, 60); got.A != 0 {
		t.Errorf("pixel outside radius = %v, want empty", got)
	}
}

func TestTinyCircleStillVisible(t *testing.T) {
	c := NewScaledCanvas(10, 5, 1000, 1000)
	c.FillCircle(500, 500, 1, gold)

	if got := c.pixelAt(5, 5); got != gold {
		t.Errorf("sub-pixel circle should light its centre, got %v", got)
	}
}

func TestDrawSpriteFallback(t *testing.T) {
	c := NewScaledCanvas(80, 60, 80, 120)
	c.SetSpriteColor(SpriteEnemy, red)
	c.DrawSprite(SpriteEnemy, 40, 60, 20, 20)

	if got := c.pixelAt(40, 60); got != red {
		t.Errorf("fallback sprite centre = %v, want %v", got, red)
	}
}

func TestDrawSpriteImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
		}
	}
	// Transparent top-left corner must not be drawn.
	img.SetNRGBA(0, 0, color.NRGBA{})

	c := NewScaledCanvas(80, 60, 80, 120)
	c.SetSprite(SpritePlayer, img)
	c.DrawSprite(SpritePlayer, 40, 60, 4, 4)

	if got := c.pixelAt(40, 60); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("sprite pixel = %v, want blue", got)
	}
	if got := c.pixelAt(38, 58); got.A != 0 {
		t.Errorf("transparent sprite pixel drawn as %v", got)
	}

	c.SetSprite(SpritePlayer, nil)
	c.Clear()
	c.SetSpriteColor(SpritePlayer, red)
	c.DrawSprite(SpritePlayer, 40, 60, 4, 4)
	if got := c.pixelAt(40, 60); got != red {
		t.Errorf("after removing the sprite the placeholder should draw, got %v", got)
	}
}

func TestRenderWritesColoursTextAndNotice(t *testing.T) {
	c := NewScaledCanvas(40, 20, 40, 40)
	c.FillCircle(20, 20, 3, gold)
	c.DrawText(2, 2, "Score: 7")
	c.DrawNotice([]string{"Game Over!"})

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"\033[38;2;255;215;0m", "Score: 7", "Game Over!", "╭"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
}

func TestClearDropsOverlays(t *testing.T) {
	c := NewScaledCanvas(40, 20, 40, 40)
	c.DrawText(2, 2, "Level: 3")
	c.DrawNotice([]string{"paused"})
	c.Clear()

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if strings.Contains(buf.String(), "Level: 3") || strings.Contains(buf.String(), "paused") {
		t.Error("Clear should remove text overlays and the notice")
	}
}

func TestDrawTextAvoidsOverlap(t *testing.T) {
	c := NewScaledCanvas(40, 10, 800, 600)
	c.DrawText(20, 30, "Score: 0")
	c.DrawText(20, 31, "Level: 1")

	if c.texts[0].row == c.texts[1].row {
		t.Errorf("texts share row %d", c.texts[0].row)
	}
}

func TestFitCanvas(t *testing.T) {
	tests := []struct {
		name                   string
		termW, termH           int
		wantW, wantH           int
		wantOffCol, wantOffRow int
	}{
		{"height bound", 120, 40, 106, 40, 7, 0},
		{"width bound", 80, 60, 80, 30, 0, 15},
		{"tiny", 1, 1, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, oc, or := FitCanvas(tt.termW, tt.termH, 800, 600)
			if w != tt.wantW || h != tt.wantH || oc != tt.wantOffCol || or != tt.wantOffRow {
				t.Errorf("FitCanvas(%d, %d) = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					tt.termW, tt.termH, w, h, oc, or, tt.wantW, tt.wantH, tt.wantOffCol, tt.wantOffRow)
			}
		})
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.WriteAt(1, 1, "hi")
	big := strings.Repeat("x", maxChunkSize*2+10)
	if _, err := cw.WriteString(big); err != nil {
		t.Fatalf("WriteString error: %v", err)
	}

	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush error: %v", err)
	}
	want := "\033[4;3Hhi" + big
	if out.String() != want {
		t.Errorf("flushed %d bytes, want %d", out.Len(), len(want))
	}
	if cw.Len() != 0 {
		t.Errorf("buffer not reset after Flush, %d bytes left", cw.Len())
	}
}

func TestLoadSprite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	img, err := LoadSprite(path)
	if err != nil {
		t.Fatalf("LoadSprite error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}

	if _, err := LoadSprite(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing sprite")
	}
}
