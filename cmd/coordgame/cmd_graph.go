package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/coordgame/bfs"
	"github.com/katalvlaran/coordgame/core"
)

func newDiameterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diameter FILE",
		Short: "Print the hop diameter of an edge-list graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			g, err := core.ReadEdgeList(f)
			if err != nil {
				return err
			}
			d, err := bfs.Diameter(g, bfs.WithContext(cmd.Context()))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func newImportGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-graph FILE",
		Short: "Import a connected edge-list graph under a network size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, _ := cmd.Flags().GetInt("size")

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			r, closeStore, err := openRunner(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			g, d, err := r.ImportGraph(cmd.Context(), size, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported n=%d: %d vertices, %d edges, diameter %d\n",
				size, g.VertexCount(), g.EdgeCount(), d)
			return nil
		},
	}
	cmd.Flags().Int("size", 0, "Network size key")
	cmd.MarkFlagRequired("size")

	return cmd
}

func newExportGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-graph",
		Short: "Write a stored graph as a canonical edge list",
		RunE: func(cmd *cobra.Command, args []string) error {
			size, _ := cmd.Flags().GetInt("size")
			out, _ := cmd.Flags().GetString("out")

			r, closeStore, err := openRunner(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return r.ExportGraph(cmd.Context(), size, w)
		},
	}
	cmd.Flags().Int("size", 0, "Network size key")
	cmd.Flags().String("out", "", "Output file (default stdout)")
	cmd.MarkFlagRequired("size")

	return cmd
}
