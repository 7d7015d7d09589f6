// Package fonts registers the typeface family used for CV rendering.
//
// Faces are loaded from TTF files on disk. Each weight maps to a file named
// <family>-<weight>.ttf inside the configured fonts directory. When a file is
// not present there, the system font directories are searched via
// go-findfont before giving up.
//
// A missing face is a hard error: rendering must not start with a partial
// family, so Load fails up front rather than substituting a default.
package fonts

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/mkuehn/vitae/pkg/errors"
)

// Weight identifies a face within the family.
type Weight string

const (
	Regular  Weight = "Regular"
	SemiBold Weight = "SemiBold"
	Bold     Weight = "Bold"
)

// DefaultFamilyName is the typeface family the default theme expects.
const DefaultFamilyName = "EBGaramond"

// weights is the set of faces a complete family must provide.
var weights = []Weight{Regular, SemiBold, Bold}

type faceKey struct {
	weight Weight
	size   float64
}

// Family holds the parsed fonts for all weights plus a cache of sized faces.
type Family struct {
	name  string
	fonts map[Weight]*truetype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// Load reads all weights of the named family from dir.
// Files are expected as <name>-<weight>.ttf (e.g. EBGaramond-SemiBold.ttf).
// A file missing from dir is searched in the system font paths; if it cannot
// be found anywhere, Load returns a FONT_MISSING error.
func Load(dir, name string) (*Family, error) {
	data := make(map[Weight][]byte, len(weights))

	for _, w := range weights {
		filename := name + "-" + string(w) + ".ttf"
		path := filepath.Join(dir, filename)

		raw, err := os.ReadFile(path)
		if err != nil {
			// Fall back to the system font directories.
			found, ferr := findfont.Find(filename)
			if ferr != nil {
				return nil, errors.Wrap(errors.ErrCodeFontMissing, err, "font file missing: %s", path)
			}
			raw, err = os.ReadFile(found)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeFontMissing, err, "read font %s", found)
			}
		}
		data[w] = raw
	}

	return FromData(name, data)
}

// FromData builds a Family from already-loaded TTF bytes, keyed by weight.
// Regular is required; SemiBold and Bold fall back to Regular when absent.
func FromData(name string, data map[Weight][]byte) (*Family, error) {
	if _, ok := data[Regular]; !ok {
		return nil, errors.New(errors.ErrCodeFontMissing, "family %s: Regular weight is required", name)
	}

	f := &Family{
		name:  name,
		fonts: make(map[Weight]*truetype.Font, len(weights)),
		faces: make(map[faceKey]font.Face),
	}
	for w, raw := range data {
		parsed, err := truetype.Parse(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFontMissing, err, "parse font %s-%s", name, w)
		}
		f.fonts[w] = parsed
	}
	return f, nil
}

// Name returns the family name (e.g. "EBGaramond").
func (f *Family) Name() string { return f.name }

// FaceName returns the full face name for a weight, used as the SVG
// font-family attribute (e.g. "EBGaramond-SemiBold").
func (f *Family) FaceName(w Weight) string {
	return f.name + "-" + string(w)
}

// Face returns a sized font.Face for the given weight.
// Faces are rendered at 72 DPI so that one pixel equals one layout point.
// The returned face is cached and must not be used concurrently with other
// faces of the same Family without external synchronization.
func (f *Family) Face(w Weight, size float64) font.Face {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := faceKey{weight: w, size: size}
	if face, ok := f.faces[key]; ok {
		return face
	}

	tt := f.fonts[w]
	if tt == nil {
		tt = f.fonts[Regular]
	}
	face := truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	f.faces[key] = face
	return face
}
