package render

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ToPDF converts one or more SVG pages to a single PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(pages [][]byte) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to convert")
	}
	if len(pages) == 1 {
		return rsvgConvert(pages[0], "pdf")
	}

	// Multi-page PDFs need file arguments; stdin carries only one document.
	dir, err := os.MkdirTemp("", "vitae-pages-*")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	args := []string{"-f", "pdf"}
	for i, page := range pages {
		path := filepath.Join(dir, fmt.Sprintf("page-%03d.svg", i+1))
		if err := os.WriteFile(path, page, 0o644); err != nil {
			return nil, fmt.Errorf("write page %d: %w", i+1, err)
		}
		args = append(args, path)
	}
	return runRsvg(nil, args)
}

// rsvgConvert shells out to rsvg-convert with the SVG on stdin.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	args := append([]string{"-f", format}, extraArgs...)
	return runRsvg(svg, args)
}

func runRsvg(stdin []byte, args []string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, fmt.Errorf("export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
	}

	cmd := exec.Command("rsvg-convert", args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
