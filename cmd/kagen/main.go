// Command kagen generates a random graph from an option string and
// prints it, running the whole process group inside one process.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/kagen"
	"github.com/katalvlaran/kagen/comm"
	"github.com/katalvlaran/kagen/graph"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		ranks      int
		validate   bool
		quiet      bool
		printEdges bool
	)
	cmd := &cobra.Command{
		Use:          "kagen \"type=<model>;key=value;...;flag\"",
		Short:        "Generate massive random graphs over a fixed group of peer ranks",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd, args[0], ranks, validate, quiet, printEdges)
		},
	}
	cmd.Flags().IntVarP(&ranks, "ranks", "p", 1, "number of peer ranks in the process group")
	cmd.Flags().BoolVar(&validate, "validate", false, "run the collective invariant checks")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", true, "suppress progress logging")
	cmd.Flags().BoolVar(&printEdges, "print-edges", false, "write the per-rank edge lists to standard output")

	return cmd
}

func generate(cmd *cobra.Command, options string, ranks int, validate, quiet, printEdges bool) error {
	graphs := make([]graph.Graph, ranks)
	err := comm.Run(ranks, func(c *comm.Comm) error {
		gen := kagen.New(c)
		gen.SetQuiet(quiet)
		if validate {
			gen.EnableValidation()
		}
		g, err := gen.GenerateFromOptionString(options)
		if err != nil {
			return err
		}
		graphs[c.Rank()] = g
		return nil
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var edges int64
	for _, g := range graphs {
		edges += g.NumLocalEdges()
	}
	fmt.Fprintf(out, "ranks=%d vertices=%d edges=%d\n", ranks, graphs[ranks-1].VertexRange.To, edges)
	if printEdges {
		for rank, g := range graphs {
			fmt.Fprintf(out, "# rank %d owns [%d, %d)\n", rank, g.VertexRange.From, g.VertexRange.To)
			for _, e := range g.Edges {
				fmt.Fprintf(out, "%d %d\n", e.U, e.V)
			}
		}
	}

	return nil
}
