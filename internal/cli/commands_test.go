package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nodeshift/pkg/errors"
	"github.com/matzehuels/nodeshift/pkg/graph"
	"github.com/matzehuels/nodeshift/pkg/observability"
)

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	g := graph.Graph{
		RootType: graph.RootDataset,
		Nodes: []graph.Node{
			{ID: "self", X: 0, Y: 100},
			{ID: "B", X: 0, Y: 150, Width: 240, Height: 40},
			{ID: "C", X: 0, Y: 210, Width: 240, Height: 40},
			{ID: "job", Kind: "dataJob", X: 0, Y: 160, Width: 240, Height: 40},
		},
		Edges: []graph.Edge{{From: "self", To: "B"}},
	}
	if err := graph.WriteGraphFile(g, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	defer observability.Reset()

	var logs bytes.Buffer
	c := New(&logs, log.DebugLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String() + logs.String(), err
}

func yOf(t *testing.T, g graph.Graph, id string) float64 {
	t.Helper()
	for _, n := range g.Nodes {
		if n.ID == id {
			return n.Y
		}
	}
	t.Fatalf("node %s not found", id)
	return 0
}

func TestExpandCommand(t *testing.T) {
	in := writeScenario(t)
	out := filepath.Join(t.TempDir(), "out.json")

	if _, err := execute(t, "expand", in, "--id", "self", "--height", "50", "-o", out); err != nil {
		t.Fatalf("expand: %v", err)
	}

	g, err := graph.ReadGraphFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := yOf(t, g, "B"); got != 160 {
		t.Errorf("B.Y = %v, want 160", got)
	}
	if got := yOf(t, g, "C"); got != 210 {
		t.Errorf("C.Y = %v, want 210", got)
	}
	if got := yOf(t, g, "job"); got != 160 {
		t.Errorf("job.Y = %v, want 160 (transformational)", got)
	}
	if len(g.Edges) != 1 {
		t.Errorf("edges = %v", g.Edges)
	}
}

func TestExpandCommandCollapse(t *testing.T) {
	in := writeScenario(t)
	logs, err := execute(t, "expand", in, "--id", "self", "--height", "100", "--collapse")
	if err != nil {
		t.Fatalf("expand --collapse: %v", err)
	}
	if !strings.Contains(logs, "Pushed 2 nodes") {
		t.Errorf("missing progress line in:\n%s", logs)
	}
}

func TestExpandCommandMinSeparation(t *testing.T) {
	in := writeScenario(t)
	out := filepath.Join(t.TempDir(), "out.json")

	if _, err := execute(t, "expand", in, "--id", "self", "--height", "50", "--min-separation", "30", "-o", out); err != nil {
		t.Fatal(err)
	}
	g, _ := graph.ReadGraphFile(out)
	if got := yOf(t, g, "B"); got != 180 {
		t.Errorf("B.Y = %v, want 180", got)
	}
}

func TestExpandCommandConfig(t *testing.T) {
	in := writeScenario(t)
	out := filepath.Join(t.TempDir(), "out.json")
	cfg := filepath.Join(t.TempDir(), "nodeshift.toml")
	body := "[layout]\nexpand_height = 50\n\n[transformational]\ndataset = []\n"
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "expand", in, "--id", "self", "-c", cfg, "-o", out); err != nil {
		t.Fatal(err)
	}
	g, _ := graph.ReadGraphFile(out)
	// With no transformational kinds the job is an obstacle too.
	if got := yOf(t, g, "B"); got != 160 {
		t.Errorf("B.Y = %v, want 160", got)
	}
	if got := yOf(t, g, "job"); got != 210 {
		t.Errorf("job.Y = %v, want 210", got)
	}
}

func TestExpandCommandErrors(t *testing.T) {
	in := writeScenario(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing node", []string{"expand", in, "--id", "nope"}, errors.ErrCodeNodeNotFound},
		{"missing file", []string{"expand", filepath.Join(t.TempDir(), "x.json"), "--id", "self"}, errors.ErrCodeFileNotFound},
		{"bad root type", []string{"expand", in, "--id", "self", "--root-type", "table"}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := execute(t, "expand", in); err == nil {
		t.Error("missing --id should fail")
	}
}

func TestRenderCommandDOT(t *testing.T) {
	in := writeScenario(t)
	out := filepath.Join(t.TempDir(), "preview.dot")

	if _, err := execute(t, "render", in, "--id", "self", "--height", "50", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	dot := string(data)
	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("not DOT output:\n%s", dot)
	}
	// B is pushed to y=160, so its center is at 180.
	if !strings.Contains(dot, `pos="120,-180!"`) {
		t.Errorf("B not rendered at its pushed position:\n%s", dot)
	}

	// The render leaves the input untouched.
	g, _ := graph.ReadGraphFile(in)
	if got := yOf(t, g, "B"); got != 150 {
		t.Errorf("input modified: B.Y = %v", got)
	}
}

func TestRenderCommandUnsupportedFormat(t *testing.T) {
	_, err := execute(t, "render", writeScenario(t), "-f", "png")
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want UNSUPPORTED", err)
	}
}

func TestCacheCommands(t *testing.T) {
	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appName) {
		t.Errorf("cache path output = %q", out)
	}

	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Errorf("cache clear: %v", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "nodeshift") {
		t.Error("bash completion should mention the command name")
	}
}
