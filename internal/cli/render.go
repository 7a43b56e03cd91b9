package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nodeshift/pkg/cache"
	"github.com/matzehuels/nodeshift/pkg/core/cascade"
	"github.com/matzehuels/nodeshift/pkg/errors"
	"github.com/matzehuels/nodeshift/pkg/graph"
	"github.com/matzehuels/nodeshift/pkg/render/nodelink"
)

const (
	formatSVG = "svg"
	formatDOT = "dot"
)

type renderOpts struct {
	layoutFlags
	id       string
	output   string
	format   string
	detailed bool
	noCache  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a graph preview, optionally with a node expanded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = formatFromPath(opts.output)
			}
			if opts.format != formatSVG && opts.format != formatDOT {
				return errors.New(errors.ErrCodeUnsupported, "unsupported format %q (want svg or dot)", opts.format)
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.id, "id", "", "expand this node before rendering")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.svg)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show kind, offset and data in labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	ws, err := opts.load(cmd, path)
	if err != nil {
		return err
	}

	dotOpts := nodelink.Options{Detailed: opts.detailed}
	keyOpts := cache.RenderKeyOpts{Format: opts.format, Detailed: opts.detailed}
	if opts.id != "" {
		if err := ws.requireNode(opts.id); err != nil {
			return err
		}
		moves, cleanup := cascade.ExpandMoves(ws.store, ws.request(opts.id), ws.opts...)
		defer cleanup()
		dotOpts.Highlight, dotOpts.Focus = moves, opts.id
		keyOpts.ExpandID, keyOpts.ExpandHeight = opts.id, ws.height
		keyOpts.MinSeparation = ws.cfg.Layout.MinSeparation
		logger.Info("Expanded", "id", opts.id, "moved", moves.Len())
	}

	g := ws.store.Snapshot()
	dot := nodelink.ToDOT(g, dotOpts)

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + "." + opts.format
	}

	if opts.format == formatDOT {
		if err := os.WriteFile(output, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		printSuccess("Wrote DOT")
		printFile(output)
		return nil
	}

	svg, cached, err := c.renderSVG(cmd, ws, g, dot, keyOpts, opts.noCache)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, svg, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered %d nodes", len(g.Nodes))
	printCacheStatus(cached)
	printFile(output)
	return nil
}

func (c *CLI) renderSVG(cmd *cobra.Command, ws *workspace, g graph.Graph, dot string, keyOpts cache.RenderKeyOpts, noCache bool) ([]byte, bool, error) {
	ctx := cmd.Context()

	artifacts, err := newCache(ctx, ws.cfg.Cache, noCache)
	if err != nil {
		return nil, false, err
	}
	defer artifacts.Close()

	data, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, false, err
	}
	key := cache.NewDefaultKeyer().RenderKey(cache.Hash(data), keyOpts)

	spinner := newSpinner(ctx, "Rendering preview")
	spinner.Start()
	defer spinner.Stop()

	return cache.GetOrCompute(ctx, artifacts, key, "render", ws.cfg.Cache.TTL, func() ([]byte, error) {
		return nodelink.RenderSVG(ctx, dot)
	})
}

func formatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".dot") {
		return formatDOT
	}
	return formatSVG
}
