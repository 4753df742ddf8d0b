package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const mtcarsCSV = `mpg,cyl,hp,wt
21.0,6,110,2.620
21.0,6,111,2.875
22.8,4,93,2.320
21.4,6,112,3.215
18.7,8,175,3.440
18.1,6,105,3.460
14.3,8,245,3.570
24.4,4,62,3.190
22.8,4,95,3.150
19.2,6,123,3.440
17.8,6,124,3.440
16.4,8,180,4.070
`

// isolate points HOME at a temp dir so config reads and writes stay local.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// resetFlags restores every flag of c and its children to its default so
// values do not leak between invocations.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd is a helper to execute the root command with args and return stdout.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := tryCmd(args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func tryCmd(args ...string) (string, error) {
	resetFlags(rootCmd)
	cfg = nil
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestCLI_SummarizeMarkdownAndJSON(t *testing.T) {
	home := isolate(t)
	data := writeFile(t, home, "mtcars.csv", mtcarsCSV)

	out := runCmd(t, "summarize", data)
	if !strings.Contains(out, "[SUMMARY]") || !strings.Contains(out, "Columns: 4") {
		t.Fatalf("unexpected markdown summary:\n%s", out)
	}

	out = runCmd(t, "summarize", data, "--style", "numeric", "--format", "json")
	if !strings.Contains(out, `"style": "numeric"`) || !strings.Contains(out, `"name": "mpg"`) {
		t.Fatalf("unexpected json summary:\n%s", out)
	}

	out = runCmd(t, "summarize", data, "--style", " NUMERIC ", "--format", "json")
	if !strings.Contains(out, `"style": "numeric"`) {
		t.Fatalf("flag style should be case-insensitive:\n%s", out)
	}
	if _, err := tryCmd("summarize", data, "--style", "wide"); err == nil {
		t.Fatalf("expected invalid style error")
	}
}

func TestCLI_SummarizeReportToFile(t *testing.T) {
	home := isolate(t)
	data := writeFile(t, home, "mtcars.csv", mtcarsCSV)
	outPath := filepath.Join(home, "report.yaml")

	out := runCmd(t, "summarize", data, "--report", "--format", "yaml", "-o", outPath)
	if !strings.Contains(out, "✓ Wrote report to") {
		t.Fatalf("unexpected output: %s", out)
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	for _, want := range []string{"id:", "generated_at:", "summary:", "diagnostics:"} {
		if !strings.Contains(string(b), want) {
			t.Fatalf("report missing %q:\n%s", want, b)
		}
	}
}

func TestCLI_SummarizeBatchAvoidsOverwrite(t *testing.T) {
	home := isolate(t)
	d1 := filepath.Join(home, "d1")
	d2 := filepath.Join(home, "d2")
	for _, d := range []string{d1, d2} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		writeFile(t, d, "metrics.csv", "col1,col2\nA,1\nB,2\nC,3\n")
	}
	outDir := filepath.Join(home, "reports")
	runCmd(t, "summarize-batch", filepath.Join(home, "d*", "metrics.csv"), "--out-dir", outDir, "--quiet")

	for _, name := range []string{"metrics.summary.md", "metrics__2.summary.md"} {
		b, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if !strings.Contains(string(b), "[REPORT]") {
			t.Fatalf("%s is not a report", name)
		}
	}
}

func TestCLI_Detect(t *testing.T) {
	home := isolate(t)
	data := writeFile(t, home, "mtcars.csv", mtcarsCSV)

	cases := map[string][]string{
		"histogram": {"detect", data, "mpg"},
		"scatter":   {"detect", data, "mpg", "hp"},
		"boxlike":   {"detect", data, "mpg", "cyl"},
	}
	for want, args := range cases {
		if got := strings.TrimSpace(runCmd(t, args...)); got != want {
			t.Fatalf("%v: got %q want %q", args, got, want)
		}
	}
	if _, err := tryCmd("detect", data, "nope"); err == nil || !strings.Contains(err.Error(), "unknown column") {
		t.Fatalf("expected unknown column error, got %v", err)
	}
}

func TestCLI_PlotWritesImage(t *testing.T) {
	home := isolate(t)
	data := writeFile(t, home, "mtcars.csv", mtcarsCSV)

	png := filepath.Join(home, "mpg.png")
	out := runCmd(t, "plot", data, "mpg", "-o", png, "--width", "400", "--height", "300")
	if !strings.Contains(out, "histogram chart") {
		t.Fatalf("unexpected output: %s", out)
	}
	b, err := os.ReadFile(png)
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Fatalf("not a png")
	}

	svg := filepath.Join(home, "wt.svg")
	runCmd(t, "plot", data, "wt", "mpg", "--kind", "scatter", "--theme", "dark", "-o", svg)
	b, err = os.ReadFile(svg)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(b), "<svg") {
		t.Fatalf("not an svg")
	}

	if _, err := tryCmd("plot", data, "mpg"); err == nil {
		t.Fatalf("expected error without --output")
	}
}

func TestCLI_Diagnose(t *testing.T) {
	home := isolate(t)
	data := writeFile(t, home, "gaps.csv", "a,b,c\n1,x,2\n,y,4\n3,,6\n4,x,\n")
	chart := filepath.Join(home, "missing.png")
	out := runCmd(t, "diagnose", data, "--missing-chart", chart)
	if !strings.Contains(out, "[MISSING VALUES]") || !strings.Contains(out, "[CORRELATIONS]") {
		t.Fatalf("unexpected diagnostics:\n%s", out)
	}
	if _, err := os.Stat(chart); err != nil {
		t.Fatalf("missing chart not written: %v", err)
	}
}

func TestCLI_DiagnoseChartsOnCleanData(t *testing.T) {
	home := isolate(t)
	data := writeFile(t, home, "mtcars.csv", mtcarsCSV)
	missing := filepath.Join(home, "missing.png")
	outliers := filepath.Join(home, "outliers.svg")
	target := filepath.Join(home, "target.png")
	out := runCmd(t, "diagnose", data, "--missing-chart", missing, "--outliers", outliers, "--target", "mpg", "--target-chart", target)
	for _, p := range []string{missing, outliers, target} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("chart %s not written: %v\n%s", p, err, out)
		}
	}
	if !strings.Contains(out, "✓ Wrote outlier chart to") || !strings.Contains(out, "✓ Wrote target chart to") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	b, err := os.ReadFile(outliers)
	if err != nil || !strings.Contains(string(b), "<svg") {
		t.Fatalf("outlier chart is not svg: %v", err)
	}

	if _, err := tryCmd("diagnose", data, "--target-chart", target); err == nil {
		t.Fatalf("expected error for --target-chart without --target")
	}
	if _, err := tryCmd("diagnose", data, "--target", "nope", "--target-chart", target); err == nil {
		t.Fatalf("expected unknown column error")
	}
}

func TestCLI_Models(t *testing.T) {
	home := isolate(t)
	results := writeFile(t, home, "results.yaml", `
Linear Regression:
  R2: 0.85
  MAE: 0.12
Random Forest:
  R2: 0.92
  MAE: 0.08
XGBoost:
  R2: 0.94
  MAE: 0.07
`)
	if got := strings.TrimSpace(runCmd(t, "models", "best", results, "--metric", "R2")); got != "XGBoost" {
		t.Fatalf("best: got %q", got)
	}
	out := runCmd(t, "models", "best", results, "-m", "R2", "--rank")
	if !strings.HasPrefix(out, "1. XGBoost: 0.94\n2. Random Forest: 0.92\n") {
		t.Fatalf("rank:\n%s", out)
	}
	if _, err := tryCmd("models", "best", results, "--metric", "AUC"); err == nil || !strings.Contains(err.Error(), "unknown metric") {
		t.Fatalf("expected unknown metric error, got %v", err)
	}

	out = runCmd(t, "models", "show", results)
	if !strings.Contains(out, "| XGBoost | 0.07 | 0.94* |") {
		t.Fatalf("show:\n%s", out)
	}

	tuned := writeFile(t, home, "tuned.json", `{"XGBoost": {"R2": 0.97, "MAE": 0.05}}`)
	out = runCmd(t, "models", "compare", results, tuned)
	if !strings.Contains(out, "vs") {
		t.Fatalf("compare:\n%s", out)
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home := isolate(t)
	runCmd(t, "config", "set", "theme", "dark")
	if _, err := os.Stat(filepath.Join(home, ".plotease", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	out := runCmd(t, "config", "show")
	if !strings.Contains(out, "theme: dark") || !strings.Contains(out, "histogram_bins: 30") {
		t.Fatalf("show:\n%s", out)
	}
	if _, err := tryCmd("config", "set", "theme", "neon"); err == nil {
		t.Fatalf("expected invalid theme error")
	}
}
