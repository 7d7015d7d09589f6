// Package pkg provides the core libraries for vitae CV rendering.
//
// # Overview
//
// Vitae renders a structured YAML profile into a styled executive CV. The
// pkg directory is organized around the data flow:
//
//	profile YAML
//	      ↓
//	 [profile] package (schema validation + decoding)
//	      ↓
//	 [render/page] package (sections, flowables, pagination)
//	      ↓
//	 [render/fusion] package (convergence diagram)
//	      ↓
//	 SVG / PDF / PNG output
//
// # Main Packages
//
// [profile] - The CV data model: header, summary, signature highlights,
// experience fusion, experience, education, skills. Loaded from YAML and
// validated against an embedded JSON schema.
//
// [fonts] - Typeface loading (TTF families with regular, semibold, and bold
// weights) with system-font fallback discovery.
//
// [render] - The rendering pipeline: text measurement, canvas backends,
// the fusion diagram engine, page layout, and SVG→PDF/PNG conversion.
//
// [output] - Dated artifact paths and archive-on-collision handling.
//
// [pipeline] - Orchestration from profile path to written artifacts, with
// content-addressed caching.
//
// [cache] - File-based artifact cache used by the pipeline.
//
// [config] - Optional TOML theme configuration merged over defaults.
//
// [errors] - Structured errors with machine-readable codes.
//
// # Quick Start
//
// Render a profile to PDF:
//
//	import (
//	    "github.com/mkuehn/vitae/pkg/fonts"
//	    "github.com/mkuehn/vitae/pkg/profile"
//	    "github.com/mkuehn/vitae/pkg/render"
//	    "github.com/mkuehn/vitae/pkg/render/page"
//	    "github.com/mkuehn/vitae/pkg/render/text"
//	)
//
//	p, _ := profile.Load("cv.yaml")
//	fam, _ := fonts.Load("fonts", fonts.DefaultFamilyName)
//	m := text.NewMeasurer(fam)
//	doc := page.NewDocument(m)
//	flow, _ := page.NewBuilder(m, doc.ContentWidth()).Build(p)
//	pdf, _ := render.ToPDF(doc.RenderSVG(flow))
//
// [profile]: https://pkg.go.dev/github.com/mkuehn/vitae/pkg/profile
// [fonts]: https://pkg.go.dev/github.com/mkuehn/vitae/pkg/fonts
// [render]: https://pkg.go.dev/github.com/mkuehn/vitae/pkg/render
// [output]: https://pkg.go.dev/github.com/mkuehn/vitae/pkg/output
// [pipeline]: https://pkg.go.dev/github.com/mkuehn/vitae/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/mkuehn/vitae/pkg/cache
// [config]: https://pkg.go.dev/github.com/mkuehn/vitae/pkg/config
// [errors]: https://pkg.go.dev/github.com/mkuehn/vitae/pkg/errors
package pkg
