package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/nodeshift/internal/server"
)

type serveOpts struct {
	layoutFlags
	addr    string
	noCache bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [graph.json]",
		Short: "Serve the HTTP preview API for a graph",
		Long: `Serve loads a graph and exposes it over HTTP:

  GET  /healthz
  GET  /api/graph
  GET  /api/nodes/{id}/plan?height=H
  POST /api/nodes/{id}/expand   {"height": H, "root_type": "..."}
  POST /api/collapse
  GET  /api/render.svg?detailed=true

At most one node is expanded at a time. Stopping the server collapses it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, path string, opts *serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	ws, err := opts.load(cmd, path)
	if err != nil {
		return err
	}
	artifacts, err := newCache(ctx, ws.cfg.Cache, opts.noCache)
	if err != nil {
		return err
	}
	defer artifacts.Close()

	addr := ws.cfg.Server.Addr
	if opts.addr != "" {
		addr = opts.addr
	}

	srv := server.New(ws.store, ws.rules, server.Options{
		ExpandHeight:  ws.height,
		RootType:      ws.root,
		Cascade:       ws.opts,
		Cache:         artifacts,
		CacheTTL:      ws.cfg.Cache.TTL,
		Logger:        logger,
	})

	printInfo("Serving %s", path)
	printKeyValue("Address", addr)
	printKeyValue("Nodes", fmtNum(float64(len(ws.store.Nodes()))))
	logger.Info("Listening", "addr", addr, "cache", ws.cfg.Cache.Backend)

	return srv.ListenAndServe(ctx, addr)
}
