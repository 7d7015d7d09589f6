// Package profile defines the CV data model and loads it from YAML.
//
// The model mirrors the source document structure one to one: optional
// sections are nil slices or empty strings and are simply skipped by the
// renderer. Loading validates against an embedded JSON schema before
// decoding, so field-level mistakes surface with a path instead of a zero
// value deep in the layout.
package profile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Profile is a complete CV document.
type Profile struct {
	Name        string  `yaml:"name"`
	Role        string  `yaml:"role"`
	Positioning string  `yaml:"positioning"`
	Location    string  `yaml:"location"`
	Contact     Contact `yaml:"contact"`

	Summary             []string     `yaml:"summary"`
	SignatureHighlights []Highlight  `yaml:"signature_highlights"`
	ExperienceFusion    *Fusion      `yaml:"experience_fusion"`
	Experience          []Experience `yaml:"experience"`
	Education           []Education  `yaml:"education"`
	Skills              []SkillGroup `yaml:"skills"`
	Languages           []string     `yaml:"languages"`
	Interests           []string     `yaml:"interests"`
}

// Contact holds the header contact line. Empty fields are omitted.
type Contact struct {
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	LinkedIn string `yaml:"linkedin"`
	Website  string `yaml:"website"`
}

// Highlight is one cell of the signature-highlights grid.
type Highlight struct {
	Title  string `yaml:"title"`
	Detail string `yaml:"detail"`
}

// Experience is one position in the experience section.
type Experience struct {
	Role     string   `yaml:"role"`
	Company  string   `yaml:"company"`
	Period   string   `yaml:"period"`
	Location string   `yaml:"location"`
	Bullets  []string `yaml:"bullets"`
}

// Education is one row of the education table.
type Education struct {
	School string `yaml:"school"`
	Degree string `yaml:"degree"`
	Period string `yaml:"period"`
}

// SkillGroup is one row of the skills table: a category and its entries.
type SkillGroup struct {
	Category string   `yaml:"category"`
	Items    []string `yaml:"items"`
}

// Fusion is the experience-fusion section: the convergence diagram's data.
type Fusion struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Inputs      []FusionInput  `yaml:"inputs"`
	Outputs     []FusionOutput `yaml:"outputs"`
}

// DefaultFusionTitle is used when the section carries no explicit title.
const DefaultFusionTitle = "Experience Fusion"

// SectionTitle returns the section heading, falling back to the default.
func (f *Fusion) SectionTitle() string {
	if f.Title != "" {
		return f.Title
	}
	return DefaultFusionTitle
}

// FusionInput is one left-column node. In YAML it is either a bare string,
// which becomes both label and key, or a mapping with the full fields.
type FusionInput struct {
	Key     string   `yaml:"key"`
	Label   string   `yaml:"label"`
	Badge   string   `yaml:"badge"`
	Bullets []string `yaml:"bullets"`
}

// UnmarshalYAML accepts the scalar shorthand alongside the mapping form.
func (f *FusionInput) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var label string
		if err := value.Decode(&label); err != nil {
			return err
		}
		f.Key = label
		f.Label = label
		return nil
	}

	// Alias type drops the method set so Decode doesn't recurse.
	type plain FusionInput
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	if p.Key == "" {
		p.Key = p.Label
	}
	*f = FusionInput(p)
	return nil
}

// FusionOutput is one right-column node.
type FusionOutput struct {
	Label   string   `yaml:"label"`
	Alias   string   `yaml:"alias"`
	Bullets []string `yaml:"bullets"`
	Sources []string `yaml:"sources"`
}

// HasFusion reports whether the profile carries a renderable fusion section.
func (p *Profile) HasFusion() bool {
	return p.ExperienceFusion != nil &&
		(len(p.ExperienceFusion.Inputs) > 0 || len(p.ExperienceFusion.Outputs) > 0)
}

// ContactLine joins location and the present contact fields with pipes, in
// header order.
func (p *Profile) ContactLine() string {
	parts := make([]string, 0, 5)
	for _, v := range []string{p.Location, p.Contact.Email, p.Contact.Phone, p.Contact.LinkedIn, p.Contact.Website} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	line := ""
	for i, p := range parts {
		if i > 0 {
			line += " | "
		}
		line += p
	}
	return line
}

// String implements fmt.Stringer for log output.
func (p *Profile) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Role)
}
