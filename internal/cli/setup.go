package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/nodeshift/pkg/classify"
	"github.com/matzehuels/nodeshift/pkg/config"
	"github.com/matzehuels/nodeshift/pkg/core/cascade"
	"github.com/matzehuels/nodeshift/pkg/errors"
	"github.com/matzehuels/nodeshift/pkg/graph"
	"github.com/matzehuels/nodeshift/pkg/store"
)

// layoutFlags are the flags shared by every command that loads a graph.
type layoutFlags struct {
	configPath    string
	rootType      string
	height        float64
	minSeparation float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "config file (.toml, .yaml)")
	cmd.Flags().StringVar(&f.rootType, "root-type", "", "root entity type; defaults to the graph's")
	cmd.Flags().Float64Var(&f.height, "height", config.DefaultExpandHeight, "expansion height in pixels")
	cmd.Flags().Float64Var(&f.minSeparation, "min-separation", cascade.MinSeparation, "gap kept between pushed nodes")
}

// workspace is a loaded graph with everything needed to expand it.
type workspace struct {
	cfg    config.Config
	store  *store.Store
	rules  classify.Rules
	root   graph.RootType
	height float64
	opts   []cascade.Option
}

// load reads the config and the graph file, letting explicit flags override
// config values.
func (f *layoutFlags) load(cmd *cobra.Command, path string) (*workspace, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("height") {
		cfg.Layout.ExpandHeight = f.height
	}
	if cmd.Flags().Changed("min-separation") {
		cfg.Layout.MinSeparation = f.minSeparation
	}
	if cmd.Flags().Changed("root-type") {
		cfg.Layout.RootType = f.rootType
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g, err := graph.ReadGraphFile(path)
	if err != nil {
		return nil, err
	}

	rules := classify.DefaultRules()
	if len(cfg.Transformational) > 0 {
		custom, err := classify.FromConfig(cfg.Transformational)
		if err != nil {
			return nil, err
		}
		rules = rules.Merge(custom)
	}

	root := g.RootType
	if cfg.Layout.RootType != "" {
		root = graph.RootType(cfg.Layout.RootType)
	}

	return &workspace{
		cfg:    cfg,
		store:  store.New(g),
		rules:  rules,
		root:   root,
		height: cfg.Layout.ExpandHeight,
		opts:   []cascade.Option{cascade.WithMinSeparation(cfg.Layout.MinSeparation)},
	}, nil
}

func (w *workspace) request(id string) cascade.Request {
	return cascade.Request{
		ID:                 id,
		ExpandHeight:       w.height,
		RootType:           w.root,
		IsTransformational: w.rules.IsTransformational,
	}
}

// requireNode returns a NODE_NOT_FOUND error when id is not in the graph.
func (w *workspace) requireNode(id string) error {
	if err := errors.ValidateNodeID(id); err != nil {
		return err
	}
	if _, ok := w.store.Node(id); !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id)
	}
	return nil
}
