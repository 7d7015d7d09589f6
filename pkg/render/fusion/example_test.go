package fusion_test

import (
	"fmt"

	"github.com/mkuehn/vitae/pkg/render/fusion"
)

func ExampleCountEdges() {
	inputs := []fusion.InputNode{
		{Label: "Consulting"},
		{Label: "Operations"},
	}
	outputs := []fusion.OutputNode{
		{Label: "Leadership", Sources: []string{"Consulting", "Operations"}},
	}

	dot := fusion.ToDOT(inputs, outputs)
	fmt.Println(fusion.CountEdges(dot))
	// Output: 2
}
