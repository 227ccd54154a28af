package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphalign/pkg/align"
	errs "github.com/matzehuels/graphalign/pkg/errors"
	graphio "github.com/matzehuels/graphalign/pkg/io"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestBuildRenderAlign(t *testing.T) {
	dir := t.TempDir()
	graph := filepath.Join(dir, "graph.json")
	dot := filepath.Join(dir, "graph.dot")

	if err := runCLI(t, "--no-cache", "build", "ACGTACG", "ACGAACG", "-o", graph, "--dot", dot); err != nil {
		t.Fatalf("build: %v", err)
	}
	g, err := graphio.ImportGraph(graph)
	if err != nil {
		t.Fatalf("ImportGraph() error: %v", err)
	}
	if g.NodeCount() != 4 {
		t.Errorf("built graph has %d nodes, want 4", g.NodeCount())
	}
	if _, err := os.Stat(dot); err != nil {
		t.Errorf("build did not write DOT: %v", err)
	}

	highlighted := filepath.Join(dir, "path.dot")
	if err := runCLI(t, "--no-cache", "render", graph, "-o", highlighted, "--path", "ACGAACG"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(highlighted)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "penwidth=2") {
		t.Errorf("render --path did not highlight a path:\n%s", data)
	}

	result := filepath.Join(dir, "result.json")
	if err := runCLI(t, "--no-cache", "align", graph, "ACGTACG", "-o", result); err != nil {
		t.Fatalf("align: %v", err)
	}
	data, err = os.ReadFile(result)
	if err != nil {
		t.Fatal(err)
	}
	res, err := graphio.UnmarshalResult(data)
	if err != nil {
		t.Fatalf("UnmarshalResult() error: %v", err)
	}
	if res.Score != 7 {
		t.Errorf("score = %d, want 7", res.Score)
	}
}

func TestBuildPairwise(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pair.json")
	if err := runCLI(t, "--no-cache", "build", "--pairwise", "ACGTACG", "ACGACG", "-o", out); err != nil {
		t.Fatalf("build --pairwise: %v", err)
	}

	err := runCLI(t, "--no-cache", "build", "--pairwise", "ACGT", "ACGT", "ACGT", "-o", out)
	if !errs.IsInvalidInput(err) {
		t.Errorf("build --pairwise with 3 sequences: got %v, want invalid input", err)
	}
}

func TestBuildFromFASTA(t *testing.T) {
	dir := t.TempDir()
	fasta := filepath.Join(dir, "in.fa")
	if err := os.WriteFile(fasta, []byte(">a\nACGTACG\n>b\nACGAACG\n>c\nACGACG\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "graph.json")
	if err := runCLI(t, "--no-cache", "build", fasta, "-o", out); err != nil {
		t.Fatalf("build: %v", err)
	}

	g, err := graphio.ImportGraph(out)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := align.New(align.DefaultScoring())
	for _, s := range []string{"ACGTACG", "ACGAACG", "ACGACG"} {
		score, err := a.Score(context.Background(), g, seqgraph.MustEncode(s))
		if err != nil || score != len(s) {
			t.Errorf("Score(%s) = %d, %v; want %d", s, score, err, len(s))
		}
	}
}

func TestMerge(t *testing.T) {
	dir := t.TempDir()
	pa, pb := filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")
	if err := graphio.ExportGraph(seqgraph.Naive(seqgraph.MustEncode("ACGT")), seqgraph.DNA, pa); err != nil {
		t.Fatal(err)
	}
	if err := graphio.ExportGraph(seqgraph.Naive(seqgraph.MustEncode("TTACGT")), seqgraph.DNA, pb); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "merged.json")
	if err := runCLI(t, "merge", pa, pb, "--a", "0:4:0", "--b", "2:6:0", "-o", out); err != nil {
		t.Fatalf("merge: %v", err)
	}
	g, err := graphio.ImportGraph(out)
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 6 {
		t.Errorf("merged graph holds %d symbols, want 6", g.Len())
	}
}

func TestScoreAndMinimize(t *testing.T) {
	if err := runCLI(t, "--no-cache", "score", "ACGTACG", "ACGTACG", "ACTACG", "-j", "2"); err != nil {
		t.Errorf("score: %v", err)
	}
	if err := runCLI(t, "minimize", "ACGTACGTTGCA", "-k", "3", "-w", "5"); err != nil {
		t.Errorf("minimize: %v", err)
	}
	if err := runCLI(t, "minimize", "ACGT", "-k", "5", "-w", "4"); !errs.IsInvalidInput(err) {
		t.Errorf("minimize with w < k: got %v, want invalid input", err)
	}
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "graphalign.toml")
	body := "[cache]\ndir = \"" + filepath.ToSlash(filepath.Join(dir, "cache")) + "\"\n"
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runCLI(t, "--config", cfg, "align", "ACGT", "ACCT"); err != nil {
		t.Fatalf("align with file cache: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "cache"))
	if err != nil || len(entries) == 0 {
		t.Errorf("cache directory empty after align: %v", err)
	}
	if err := runCLI(t, "--config", cfg, "cache", "clear"); err != nil {
		t.Errorf("cache clear: %v", err)
	}

	err = runCLI(t, "--config", filepath.Join(dir, "missing.toml"), "align", "ACGT", "ACGT")
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing config: got %v, want FILE_NOT_FOUND", err)
	}
}

func TestMetricsFlag(t *testing.T) {
	if err := runCLI(t, "--metrics", "--no-cache", "score", "ACGT", "ACGA"); err != nil {
		t.Errorf("score --metrics: %v", err)
	}
}

func TestParseInterval(t *testing.T) {
	iv, err := parseInterval("2:5:3,4")
	if err != nil {
		t.Fatalf("parseInterval() error: %v", err)
	}
	if iv.Start != 2 || iv.End != 5 || len(iv.Nodes) != 2 || iv.Nodes[1] != 4 {
		t.Errorf("parseInterval() = %v", iv)
	}

	for _, bad := range []string{"", "1:2", "a:2:0", "1:b:0", "1:2:x", "1:2:", "-1:2:0"} {
		if _, err := parseInterval(bad); !errs.Is(err, errs.ErrCodeInvalidInterval) {
			t.Errorf("parseInterval(%q) = %v, want invalid interval", bad, err)
		}
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		format, output, want string
	}{
		{"", "", formatSVG},
		{"", "out.PNG", formatPNG},
		{"", "out.txt", formatSVG},
		{"dot", "out.svg", formatDOT},
	}
	for _, tt := range tests {
		got, err := resolveFormat(tt.format, tt.output)
		if err != nil || got != tt.want {
			t.Errorf("resolveFormat(%q, %q) = %q, %v; want %q", tt.format, tt.output, got, err, tt.want)
		}
	}
	if _, err := resolveFormat("gif", ""); err == nil {
		t.Error("resolveFormat(gif) expected error")
	}
}

func TestRenderAlignment(t *testing.T) {
	aln := seqgraph.Alignment{
		A: seqgraph.MustEncode("ACGT"),
		B: seqgraph.Sequence{0, seqgraph.Gap, 3, 3},
	}

	got := renderAlignment(aln, seqgraph.DNA, 0)
	if want := "ACGT\n| .|\nA-TT\n"; got != want {
		t.Errorf("renderAlignment() = %q, want %q", got, want)
	}

	wrapped := renderAlignment(aln, seqgraph.DNA, 3)
	if want := "ACG\n| .\nA-T\n\nT\n|\nT\n"; wrapped != want {
		t.Errorf("renderAlignment() wrapped = %q, want %q", wrapped, want)
	}
}

func TestNodePath(t *testing.T) {
	g, err := seqgraph.New(seqgraph.MustEncode("ACGTACAT"), []int{0, 3, 4, 5}, [][]int{{1, 2}, {3}, {3}, nil})
	if err != nil {
		t.Fatal(err)
	}
	path := []align.Step{{A: 0, B: 0}, {A: 1, B: 1}, {A: 2, B: -1}, {A: -1, B: 2}, {A: 4, B: 3}, {A: 5, B: 4}, {A: 7, B: 5}}
	got := nodePath(g, path)
	want := []int{0, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("nodePath() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("nodePath() = %v, want %v", got, want)
		}
	}
}

func TestReadSequences(t *testing.T) {
	dir := t.TempDir()
	fasta := filepath.Join(dir, "two.fa")
	if err := os.WriteFile(fasta, []byte(">x desc\nAC\nGT\n>y\nTT\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	seqs, err := readSequences([]string{"ACG", fasta}, seqgraph.DNA)
	if err != nil {
		t.Fatalf("readSequences() error: %v", err)
	}
	names := []string{"seq1", "x", "y"}
	if len(seqs) != len(names) {
		t.Fatalf("readSequences() returned %d sequences", len(seqs))
	}
	for i, n := range names {
		if seqs[i].name != n {
			t.Errorf("sequence %d named %q, want %q", i, seqs[i].name, n)
		}
	}
	if seqs[1].seq.String() != "ACGT" {
		t.Errorf("multi-line record = %s, want ACGT", seqs[1].seq)
	}

	if _, err := readSequence(fasta, seqgraph.DNA); !errs.IsInvalidInput(err) {
		t.Errorf("readSequence() on two records: got %v, want invalid input", err)
	}
	if _, err := readSequences([]string{"ACXG"}, seqgraph.DNA); !errs.IsInvalidInput(err) {
		t.Errorf("readSequences() literal with foreign letter: got %v", err)
	}
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), logger)); got != logger {
		t.Error("loggerFromContext() did not return the attached logger")
	}
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext() returned nil without a logger")
	}

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Error("debug message logged at info level")
	}
	newProgress(logger).done("finished")
	if !strings.Contains(buf.String(), "finished (") {
		t.Errorf("progress.done() output = %q", buf.String())
	}
}

func TestSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "working")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	s.Stop()

	// Stop waits for the animation goroutine, so buf is safe to read.
	if !strings.Contains(buf.String(), "working") {
		t.Errorf("spinner output = %q", buf.String())
	}
}
