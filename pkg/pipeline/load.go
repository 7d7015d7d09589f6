package pipeline

import (
	"os"
	"path/filepath"

	"github.com/mkuehn/vitae/pkg/cache"
	"github.com/mkuehn/vitae/pkg/config"
	"github.com/mkuehn/vitae/pkg/errors"
	"github.com/mkuehn/vitae/pkg/fonts"
	"github.com/mkuehn/vitae/pkg/profile"
	"github.com/mkuehn/vitae/pkg/render/text"
)

// inputs bundles everything the render stage needs: the validated profile,
// the merged theme, and a measurer over the loaded typeface.
type inputs struct {
	raw       []byte
	profile   *profile.Profile
	theme     *config.Theme
	themeHash string
	measurer  *text.Measurer
}

// loadInputs runs the load stage. Fonts are loaded before any rendering so a
// missing face aborts the run up front.
func loadInputs(opts Options) (*inputs, error) {
	raw, err := os.ReadFile(opts.DataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeDataNotFound, err, "profile %s not found", opts.DataPath)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read profile %s", opts.DataPath)
	}

	p, err := profile.Parse(raw)
	if err != nil {
		return nil, err
	}

	themePath := opts.ThemePath
	themeHash := ""
	if themePath == "" {
		themePath = filepath.Join(filepath.Dir(opts.DataPath), config.DefaultFileName)
	}
	theme, err := config.Load(themePath)
	if err != nil {
		return nil, err
	}
	if data, err := os.ReadFile(themePath); err == nil {
		themeHash = cache.Hash(data)
	}

	fontsDir := opts.FontsDir
	if fontsDir == "" {
		fontsDir = theme.Fonts.Dir
	}
	family := opts.FontFamily
	if family == "" {
		family = theme.Fonts.Family
	}
	fam, err := fonts.Load(fontsDir, family)
	if err != nil {
		return nil, err
	}

	return &inputs{
		raw:       raw,
		profile:   p,
		theme:     theme,
		themeHash: themeHash,
		measurer:  text.NewMeasurer(fam),
	}, nil
}
