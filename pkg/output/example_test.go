package output_test

import (
	"fmt"
	"time"

	"github.com/mkuehn/vitae/pkg/output"
)

func ExampleDatedName() {
	day := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	fmt.Println(output.DatedName("cv", day, "pdf"))
	// Output: cv_20260830.pdf
}
