package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravitrone/orrery/internal/graph"
	"github.com/gravitrone/orrery/internal/schema"
)

// CheckCmd returns the `orrery check` command.
func CheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a workspace file and show the relations it implies",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ws, warns, err := schema.Load(args[0])
			if err != nil {
				return err
			}

			properties := 0
			for _, e := range ws.Entities {
				properties += len(e.Properties)
			}
			fmt.Printf("entities:   %d\n", len(ws.Entities))
			fmt.Printf("folders:    %d\n", len(ws.Folders))
			fmt.Printf("properties: %d\n", properties)

			// Relation detection is independent of property nodes, so the
			// build runs without them.
			g := graph.Build(ws, graph.Options{ShowProperties: false})
			explicit, implicit := 0, 0
			for _, e := range g.Edges {
				if e.Kind != graph.EdgeRelation {
					continue
				}
				if e.Implicit {
					implicit++
				} else {
					explicit++
				}
			}
			fmt.Printf("relations:  %d explicit, %d implicit\n", explicit, implicit)

			for _, e := range g.Edges {
				if e.Kind != graph.EdgeRelation {
					continue
				}
				src := ws.Entity(e.Source)
				dst := ws.Entity(e.Target)
				if src == nil || dst == nil {
					continue
				}
				tag := "explicit"
				if e.Implicit {
					tag = "implicit"
				}
				fmt.Printf("  %s <-> %s (%s)\n", src.Name, dst.Name, tag)
			}

			if len(warns) > 0 {
				fmt.Println()
				for _, w := range warns {
					fmt.Printf("warning: %s\n", w)
				}
			}
			return nil
		},
	}
}
