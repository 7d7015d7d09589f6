// Package page lays out flowable content onto fixed-size pages and renders
// them through the canvas backends.
//
// The model is deliberately close to classic document-layout engines: a
// Flowable knows its own height for a given width and can draw itself at a
// position; the Document stacks flowables top to bottom and breaks to a new
// page when one no longer fits. This keeps section builders declarative and
// the pagination logic in one place.
package page

import (
	"github.com/mkuehn/vitae/pkg/fonts"
	"github.com/mkuehn/vitae/pkg/render/text"
)

// Palette colors of the default theme.
const (
	AccentColor    = "#0F1C3F"
	BackgroundTint = "#FEFCF9"
	DividerColor   = "#E8E2D6"
	MutedPipeColor = "#B3B3B3"
	BodyColor      = "#1C1C1C"
	MetaColor      = "#555555"
	ContactColor   = "#444444"
	DetailColor    = "#2F2F2F"
)

// Styles is the document stylesheet: one text style per semantic role.
type Styles struct {
	HeaderName      text.Style
	HeaderRole      text.Style
	HeaderContact   text.Style
	SectionTitle    text.Style
	Body            text.Style
	ExperienceRole  text.Style
	ExperienceMeta  text.Style
	SignatureTitle  text.Style
	SignatureDetail text.Style
	EducationPeriod text.Style
}

// DefaultStyles returns the executive stylesheet.
func DefaultStyles() *Styles {
	return &Styles{
		HeaderName:      text.Style{Weight: fonts.Bold, Size: 24, Leading: 28, Color: AccentColor},
		HeaderRole:      text.Style{Weight: fonts.SemiBold, Size: 13, Leading: 16, Color: AccentColor},
		HeaderContact:   text.Style{Weight: fonts.Regular, Size: 9.5, Leading: 12, Color: ContactColor},
		SectionTitle:    text.Style{Weight: fonts.SemiBold, Size: 11, Leading: 14, Color: AccentColor},
		Body:            text.Style{Weight: fonts.Regular, Size: 10, Leading: 13, Color: BodyColor},
		ExperienceRole:  text.Style{Weight: fonts.SemiBold, Size: 11, Leading: 14, Color: AccentColor},
		ExperienceMeta:  text.Style{Weight: fonts.Regular, Size: 9, Leading: 13, Color: MetaColor},
		SignatureTitle:  text.Style{Weight: fonts.SemiBold, Size: 10.5, Leading: 13, Color: AccentColor},
		SignatureDetail: text.Style{Weight: fonts.Regular, Size: 9, Leading: 13, Color: DetailColor},
		EducationPeriod: text.Style{Weight: fonts.Regular, Size: 9, Leading: 13, Color: MetaColor},
	}
}
