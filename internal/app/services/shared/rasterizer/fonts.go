package rasterizer

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

type fontStyle int

const (
	styleRegular fontStyle = iota
	styleBold
	styleItalic
)

type faceKey struct {
	style fontStyle
	size  float64
}

// fontSet parses the embedded Go fonts once and caches faces per size. Faces
// are not safe for concurrent use, so every scaffold owns its own set.
type fontSet struct {
	fonts map[fontStyle]*truetype.Font
	faces map[faceKey]font.Face
}

func newFontSet() (*fontSet, error) {
	sources := map[fontStyle][]byte{
		styleRegular: goregular.TTF,
		styleBold:    gobold.TTF,
		styleItalic:  goitalic.TTF,
	}

	set := &fontSet{
		fonts: make(map[fontStyle]*truetype.Font, len(sources)),
		faces: make(map[faceKey]font.Face),
	}
	for style, source := range sources {
		parsed, err := truetype.Parse(source)
		if err != nil {
			return nil, fmt.Errorf("parse font %d: %w", style, err)
		}
		set.fonts[style] = parsed
	}
	return set, nil
}

func (s *fontSet) face(style fontStyle, size float64) font.Face {
	key := faceKey{style: style, size: size}
	if face, ok := s.faces[key]; ok {
		return face
	}
	face := truetype.NewFace(s.fonts[style], &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	s.faces[key] = face
	return face
}

func (s *fontSet) close() {
	for key, face := range s.faces {
		face.Close()
		delete(s.faces, key)
	}
}
