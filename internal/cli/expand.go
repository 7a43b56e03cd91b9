package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nodeshift/pkg/core/cascade"
	"github.com/matzehuels/nodeshift/pkg/errors"
	"github.com/matzehuels/nodeshift/pkg/graph"
)

type expandOpts struct {
	layoutFlags
	id       string
	output   string
	collapse bool
	dryRun   bool
}

// expandCommand creates the expand command.
func (c *CLI) expandCommand() *cobra.Command {
	var opts expandOpts

	cmd := &cobra.Command{
		Use:   "expand [graph.json]",
		Short: "Expand a node and push the nodes below it out of the way",
		Long: `Expand grows the node given by --id to --height pixels and pushes every
overlapping node below it down just far enough to keep a gap. The shifted
graph is written to --output.

With --collapse the expansion is reversed afterwards and the result is
checked against the input, which is useful for verifying round trips.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExpand(cmd, args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.id, "id", "", "node to expand (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the shifted graph to this file")
	cmd.Flags().BoolVar(&opts.collapse, "collapse", false, "collapse again and verify the round trip")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "only print the planned moves")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func (c *CLI) runExpand(cmd *cobra.Command, path string, opts *expandOpts) error {
	logger := loggerFromContext(cmd.Context())

	ws, err := opts.load(cmd, path)
	if err != nil {
		return err
	}
	if err := ws.requireNode(opts.id); err != nil {
		return err
	}
	before := ws.store.Snapshot()
	logger.Debug("graph loaded", "nodes", len(before.Nodes), "edges", len(before.Edges), "root", ws.root)

	if opts.dryRun {
		moves, _ := cascade.Plan(ws.store, ws.request(opts.id), ws.opts...)
		printMoves(opts.id, moves, ws.store.Nodes())
		return nil
	}

	prog := newProgress(logger)
	moves, cleanup := cascade.ExpandMoves(ws.store, ws.request(opts.id), ws.opts...)
	prog.done(fmt.Sprintf("Pushed %d nodes", moves.Len()))
	printMoves(opts.id, moves, before.Refs())

	if opts.output != "" {
		if err := graph.WriteGraphFile(ws.store.Snapshot(), opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	}

	if opts.collapse {
		cleanup()
		if err := samePositions(before, ws.store.Snapshot()); err != nil {
			printError("Round trip drifted")
			return err
		}
		printSuccess("Collapsed %s; all %d nodes restored", opts.id, len(before.Nodes))
	}
	return nil
}

func printMoves(id string, moves cascade.MoveSet, before []*graph.Node) {
	if moves.Len() == 0 {
		printInfo("Nothing to move below %s", id)
		return
	}
	printSuccess("Expanding %s moves %d nodes", id, moves.Len())
	fmt.Println(movesTable(moves, indexNodes(before)))
	printKeyValue("Total", "+"+fmtNum(moves.Total()))
}

// samePositions reports the first node whose position differs between a and b.
func samePositions(a, b graph.Graph) error {
	if len(a.Nodes) != len(b.Nodes) {
		return errors.New(errors.ErrCodeInternal, "node count changed: %d != %d", len(a.Nodes), len(b.Nodes))
	}
	for i := range a.Nodes {
		x, y := a.Nodes[i], b.Nodes[i]
		if x.ID != y.ID || x.X != y.X || x.Y != y.Y {
			return errors.New(errors.ErrCodeInternal, "node %s moved from (%v, %v) to (%v, %v)", x.ID, x.X, x.Y, y.X, y.Y)
		}
	}
	return nil
}
