package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/testgraph/pkg/errors"
	"github.com/matzehuels/testgraph/pkg/graph"
	"github.com/matzehuels/testgraph/pkg/journey"
	"github.com/matzehuels/testgraph/pkg/observability"
)

const reportsDoc = `{
  "lcs_report": {"similarity_type": "LCS", "comparisons": [{"testA": "login", "testB": "checkout", "similarity": 0.5}]},
  "cosine_report": {"similarity_type": "Cosine Similarity", "comparisons": [{"test_a": "login", "test_b": "search", "similarity": 0.9}]},
  "jaccard_report": {"similarity_type": "Jaccard Index", "comparisons": [{"testA": "checkout", "testB": "search", "similarity": 0.2}]}
}`

const journeysDoc = `{
  "children": [
    {"name": "Login", "children": [{"name": "Given user", "children": [{"name": "When submit"}]}]},
    {"name": "Checkout", "children": [{"name": "Given cart"}]},
    {"name": "Login", "children": [{"name": "Given user", "children": [{"name": "When cancel"}]}]}
  ]
}`

// isolate points config and cache lookups at fresh temporary directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envRedisAddr, "")
	t.Cleanup(observability.Reset)
}

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var logs, out, errOut bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestGraphCommandStdout(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, reportsDoc, "graph", "-")
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	fg, err := graph.UnmarshalForceGraph([]byte(stdout))
	if err != nil {
		t.Fatalf("output is not a force graph: %v\n%s", err, stdout)
	}
	want := []graph.ForceNode{{ID: "login"}, {ID: "checkout"}, {ID: "search"}}
	if diff := cmp.Diff(want, fg.Nodes); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
	if len(fg.Links) != 3 {
		t.Errorf("links = %d, want 3", len(fg.Links))
	}
}

func TestGraphCommandFileOutput(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "similarity.json")
	out := filepath.Join(dir, "graph.dot")
	if err := os.WriteFile(in, []byte(reportsDoc), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := execute(t, "", "graph", in, "-o", out, "--metric", "cosine,lcs", "--min-weight", "0.6", "--stats")
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty with -o, got %q", stdout)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	dot := string(data)
	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("format not inferred from .dot extension:\n%s", dot)
	}
	if strings.Count(dot, " -- ") != 1 {
		t.Errorf("want exactly one edge after filtering:\n%s", dot)
	}
	for _, want := range []string{out, "fresh", "Similarity graph", "cosine"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestGraphCommandKeepsOutOfRangeWeights(t *testing.T) {
	isolate(t)
	doc := `{
  "lcs_report": {"comparisons": [{"testA": "T1", "testB": "T2", "similarity": -0.25}]},
  "cosine_report": {"comparisons": [{"testA": "T1", "testB": "T3", "similarity": 0.9}]},
  "jaccard_report": {"comparisons": [{"testA": "T2", "testB": "T3", "similarity": 1.5}]}
}`

	tests := []struct {
		name      string
		args      []string
		wantLinks int
	}{
		{"NoThreshold", nil, 3},
		{"ExplicitZero", []string{"--min-weight", "0"}, 2},
		{"ConfiguredThreshold", []string{"--config", writeConfig(t, "min_weight = 1.0")}, 1},
		{"FlagOverridesConfig", []string{"--config", writeConfig(t, "min_weight = 1.0"), "--min-weight", "0.5"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--no-cache", "graph", "-"}, tt.args...)
			stdout, _, err := execute(t, doc, args...)
			if err != nil {
				t.Fatalf("graph: %v", err)
			}
			fg, err := graph.UnmarshalForceGraph([]byte(stdout))
			if err != nil {
				t.Fatal(err)
			}
			if len(fg.Links) != tt.wantLinks {
				t.Errorf("links = %d, want %d: %+v", len(fg.Links), tt.wantLinks, fg.Links)
			}
		})
	}
}

func TestGraphCommandCached(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "graph.json")

	for i, want := range []string{"fresh", "cached"} {
		_, stderr, err := execute(t, reportsDoc, "graph", "-", "-o", out)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if !strings.Contains(stderr, want) {
			t.Errorf("run %d: stderr missing %q:\n%s", i, want, stderr)
		}
	}

	_, stderr, err := execute(t, reportsDoc, "--no-cache", "graph", "-", "-o", out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "fresh") {
		t.Errorf("--no-cache served from cache:\n%s", stderr)
	}
}

func TestGraphCommandErrors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantCode errors.Code
	}{
		{"UnknownMetric", reportsDoc, []string{"graph", "-", "--metric", "euclid"}, errors.ErrCodeInvalidInput},
		{"BadFormat", reportsDoc, []string{"graph", "-", "--format", "svg"}, errors.ErrCodeInvalidFormat},
		{"MissingFile", "", []string{"graph", "/does/not/exist.json"}, errors.ErrCodeFileNotFound},
		{"Malformed", `{"lcs_report": []}`, []string{"graph", "-"}, errors.ErrCodeMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, _, err := execute(t, tt.stdin, tt.args...)
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q (err %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestJourneyCommand(t *testing.T) {
	isolate(t)

	tests := []struct {
		mode      string
		wantNodes int
	}{
		{"", 8},
		{"shallow", 8},
		{"deep", 7},
	}

	for _, tt := range tests {
		t.Run("mode="+tt.mode, func(t *testing.T) {
			args := []string{"journey", "-"}
			if tt.mode != "" {
				args = append(args, "--mode", tt.mode)
			}
			stdout, _, err := execute(t, journeysDoc, args...)
			if err != nil {
				t.Fatalf("journey: %v", err)
			}
			var tree journey.Node
			if err := json.Unmarshal([]byte(stdout), &tree); err != nil {
				t.Fatalf("unmarshal: %v\n%s", err, stdout)
			}
			if tree.Name != journey.MergedRootLabel {
				t.Errorf("root = %q", tree.Name)
			}
			if tree.Count() != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", tree.Count(), tt.wantNodes)
			}
		})
	}
}

func TestJourneyCommandUsesConfig(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "mode = \"deep\"\nroot_label = \"Suite\"\nformat = \"dot\"\n")

	stdout, _, err := execute(t, journeysDoc, "--config", cfg, "journey", "-")
	if err != nil {
		t.Fatalf("journey: %v", err)
	}
	if !strings.HasPrefix(stdout, "digraph G {") || !strings.Contains(stdout, `n0 [label="Suite"]`) {
		t.Errorf("config not applied:\n%s", stdout)
	}
	if strings.Count(stdout, `label="Given user"`) != 1 {
		t.Errorf("deep mode from config not applied:\n%s", stdout)
	}

	stdout, _, err = execute(t, journeysDoc, "--config", cfg, "journey", "-", "--mode", "shallow", "--format", "json", "--root-label", "Flags")
	if err != nil {
		t.Fatalf("journey: %v", err)
	}
	var tree journey.Node
	if err := json.Unmarshal([]byte(stdout), &tree); err != nil {
		t.Fatalf("flags did not override config: %v", err)
	}
	if tree.Name != "Flags" || tree.Count() != 8 {
		t.Errorf("root = %q, nodes = %d", tree.Name, tree.Count())
	}
}

func TestJourneyCommandErrors(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, journeysDoc, "journey", "-", "--mode", "sideways")
	if !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidMode)
	}

	_, _, err = execute(t, `{"children": [{"children": []}]}`, "journey", "-")
	if !errors.IsMalformed(err) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeMalformedInput)
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		flag, output, configured string
		want                     string
	}{
		{"", "", "", "json"},
		{"dot", "out.json", "json", "dot"},
		{"", "out.gv", "json", "dot"},
		{"", "out.JSON", "dot", "json"},
		{"", "out.txt", "dot", "dot"},
		{"", "", "dot", "dot"},
	}

	for _, tt := range tests {
		if got := resolveFormat(tt.flag, tt.output, tt.configured); got != tt.want {
			t.Errorf("resolveFormat(%q, %q, %q) = %q, want %q", tt.flag, tt.output, tt.configured, got, tt.want)
		}
	}
}

func TestCompletionAndVersion(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "", "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(stdout, "testgraph") {
		t.Error("bash completion does not mention testgraph")
	}

	stdout, _, err = execute(t, "", "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.HasPrefix(stdout, "testgraph version ") {
		t.Errorf("--version = %q", stdout)
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, errors.Malformed("comparison 0: missing testA"))
	if !strings.Contains(buf.String(), "comparison 0: missing testA") {
		t.Errorf("PrintError = %q", buf.String())
	}
}

func TestExampleDocuments(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "", "graph", filepath.Join("..", "..", "examples", "similarity.json"))
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	fg, err := graph.UnmarshalForceGraph([]byte(stdout))
	if err != nil {
		t.Fatal(err)
	}
	if len(fg.Nodes) != 5 || len(fg.Links) != 8 {
		t.Errorf("similarity example: %d nodes, %d links; want 5, 8", len(fg.Nodes), len(fg.Links))
	}

	stdout, _, err = execute(t, "", "journey", filepath.Join("..", "..", "examples", "journeys.json"), "--mode", "deep")
	if err != nil {
		t.Fatalf("journey: %v", err)
	}
	var tree journey.Node
	if err := json.Unmarshal([]byte(stdout), &tree); err != nil {
		t.Fatal(err)
	}
	if tree.ChildCount() != 2 {
		t.Errorf("journey example: %d journeys, want 2", tree.ChildCount())
	}
	login := tree.Children[0]
	if login.Name != "Login" || login.ChildCount() != 2 || login.Children[0].ChildCount() != 4 {
		t.Errorf("Login journey not deep-merged: %+v", login)
	}
}
