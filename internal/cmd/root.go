package cmd

import "github.com/spf13/cobra"

// RootCmd returns the `orrery` root command. Run bare it behaves like
// `orrery view`, so `orrery crm.yaml` goes straight to the graph.
func RootCmd() *cobra.Command {
	root := newViewCommand("orrery [file]", "Orrery - knowledge graph explorer")
	root.Long = "Orrery lays out a workspace of entities as an animated graph: " +
		"entities repel and settle, properties orbit their owners, and relations " +
		"are read from typed properties or naming. Pan, zoom, drag, pin, search, " +
		"and export snapshots."
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.AddCommand(ViewCmd())
	root.AddCommand(ExportCmd())
	root.AddCommand(CheckCmd())
	return root
}
