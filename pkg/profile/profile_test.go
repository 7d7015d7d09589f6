package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mkuehn/vitae/pkg/errors"
)

const minimalYAML = `
name: Ada Example
role: Chief Example Officer
contact:
  email: ada@example.com
`

func TestParseMinimal(t *testing.T) {
	p, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if p.Name != "Ada Example" || p.Role != "Chief Example Officer" {
		t.Errorf("header fields = %q / %q", p.Name, p.Role)
	}
	if p.HasFusion() {
		t.Error("HasFusion() = true without a fusion section")
	}
}

func TestParseRejectsMissingRequired(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no name", "role: CEO\ncontact: {email: a@b.c}\n"},
		{"no role", "name: Ada\ncontact: {email: a@b.c}\n"},
		{"no contact", "name: Ada\nrole: CEO\n"},
		{"experience missing period", `
name: Ada
role: CEO
contact: {email: a@b.c}
experience:
  - role: VP
    company: Acme
    location: Berlin
`},
		{"not yaml at all", "\t{]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() error = nil, want INVALID_DATA")
			}
			if !errors.Is(err, errors.ErrCodeInvalidData) {
				t.Errorf("error code = %v, want INVALID_DATA", errors.GetCode(err))
			}
		})
	}
}

func TestFusionInputScalarShorthand(t *testing.T) {
	p, err := Parse([]byte(`
name: Ada
role: CEO
contact: {email: a@b.c}
experience_fusion:
  inputs:
    - Consulting
    - label: Operations
      key: ops
      badge: B
      bullets: [scaling, hiring]
  outputs:
    - label: Transformation
      sources: [Consulting, ops]
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	f := p.ExperienceFusion
	if f == nil {
		t.Fatal("ExperienceFusion = nil")
	}
	if !p.HasFusion() {
		t.Error("HasFusion() = false")
	}

	if got := f.Inputs[0]; got.Label != "Consulting" || got.Key != "Consulting" {
		t.Errorf("scalar input = %+v, want label and key both Consulting", got)
	}
	if got := f.Inputs[1]; got.Key != "ops" || got.Badge != "B" || len(got.Bullets) != 2 {
		t.Errorf("mapping input = %+v", got)
	}
	if got := f.Outputs[0]; len(got.Sources) != 2 {
		t.Errorf("output sources = %v", got.Sources)
	}
}

func TestFusionMappingInputDefaultsKeyToLabel(t *testing.T) {
	p, err := Parse([]byte(`
name: Ada
role: CEO
contact: {email: a@b.c}
experience_fusion:
  inputs:
    - label: Strategy
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := p.ExperienceFusion.Inputs[0].Key; got != "Strategy" {
		t.Errorf("Key = %q, want label fallback", got)
	}
}

func TestFusionSectionTitleDefault(t *testing.T) {
	f := &Fusion{}
	if got := f.SectionTitle(); got != DefaultFusionTitle {
		t.Errorf("SectionTitle() = %q", got)
	}
	f.Title = "Convergence"
	if got := f.SectionTitle(); got != "Convergence" {
		t.Errorf("SectionTitle() = %q, want explicit title", got)
	}
}

func TestContactLine(t *testing.T) {
	p := &Profile{
		Location: "Berlin",
		Contact:  Contact{Email: "a@b.c", Website: "example.com"},
	}
	if got := p.ContactLine(); got != "Berlin | a@b.c | example.com" {
		t.Errorf("ContactLine() = %q", got)
	}

	if got := (&Profile{}).ContactLine(); got != "" {
		t.Errorf("ContactLine() on empty profile = %q, want empty", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.Name != "Ada Example" {
		t.Errorf("Name = %q", p.Name)
	}

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, errors.ErrCodeDataNotFound) {
		t.Errorf("missing file error code = %v, want DATA_NOT_FOUND", errors.GetCode(err))
	}
}
