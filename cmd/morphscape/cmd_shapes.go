package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vektorsolutions/morphscape/shapes"
)

// shapesCmd prints the generated shape library
var shapesCmd = &cobra.Command{
	Use:   "shapes [kind...]",
	Short: "Generate shapes and print their bounds",
	Long: `Builds the shape library for the content's sections (or the given kinds)
at the particle budget and prints point counts, bounds and centroids.

Known kinds are listed with --list.`,
	RunE: runShapes,
}

var shapesList bool

func init() {
	shapesCmd.Flags().BoolVarP(&shapesList, "list", "l", false, "list known shape kinds")
}

func runShapes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if shapesList {
		for _, k := range shapes.Kinds() {
			fmt.Fprintln(out, k)
		}
		return nil
	}

	content, err := loadContent()
	if err != nil {
		return err
	}
	kinds := args
	if len(kinds) == 0 {
		kinds = content.Kinds()
	}
	lib, err := shapes.Build(cmd.Context(), content.Particles, kinds)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKIND\tPOINTS\tMIN\tMAX\tCENTROID")
	for i, set := range lib.Sets {
		lo, hi := set.Bounds()
		c := set.Centroid()
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\n", i, lib.Kinds[i], len(set), vec(lo[:]), vec(hi[:]), vec(c[:]))
	}
	return tw.Flush()
}

func vec(v []float32) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}
