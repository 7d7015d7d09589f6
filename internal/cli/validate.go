package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkuehn/vitae/pkg/profile"
	"github.com/mkuehn/vitae/pkg/render/fusion"
	"github.com/mkuehn/vitae/pkg/render/page"
)

// validateCommand creates the validate command, which checks a profile
// against the schema without rendering anything.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [profile.yaml]",
		Short: "Check a profile against the schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := resolveProfileArg(args)
			if err != nil {
				return err
			}
			p, err := profile.Load(input)
			if err != nil {
				printError("%s is not a valid profile", input)
				return err
			}

			printSuccess("%s is valid", input)
			printKeyValue("Name", p.Name)
			printKeyValue("Role", p.Role)
			printKeyValue("Sections", strings.Join(sectionSummary(p), ", "))
			if p.HasFusion() {
				inputs, outputs := page.FusionNodes(p.ExperienceFusion)
				printKeyValue("Fusion", fmt.Sprintf("%d inputs, %d outputs, %d edges",
					len(inputs), len(outputs), fusion.CountEdges(fusion.ToDOT(inputs, outputs))))
			}
			printNewline()
			printNextStep("Render it", "vitae build "+input)
			return nil
		},
	}
}

// sectionSummary lists the optional sections the profile carries.
func sectionSummary(p *profile.Profile) []string {
	sections := []string{"summary", "experience"}
	if p.HasFusion() {
		sections = append(sections, "fusion")
	}
	if len(p.SignatureHighlights) > 0 {
		sections = append(sections, "highlights")
	}
	if len(p.Education) > 0 {
		sections = append(sections, "education")
	}
	if len(p.Skills) > 0 {
		sections = append(sections, "skills")
	}
	return sections
}
