package client

import (
	"image"

	"github.com/charmbracelet/log"
	"github.com/tomz197/ballrush/internal/draw"
)

// LoadSprites loads the optional sprite images named by paths. Empty paths
// are skipped; a file that fails to load is logged and left out, so the
// canvas draws its placeholder shape instead.
func LoadSprites(paths map[draw.SpriteKind]string, logger *log.Logger) map[draw.SpriteKind]image.Image {
	sprites := make(map[draw.SpriteKind]image.Image, len(paths))
	for kind, path := range paths {
		if path == "" {
			continue
		}
		img, err := draw.LoadSprite(path)
		if err != nil {
			logger.Warn("sprite unavailable, using placeholder", "sprite", kind, "err", err)
			continue
		}
		sprites[kind] = img
	}
	return sprites
}
