package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"numcmp/internal"
	"numcmp/internal/simulation"
	"numcmp/internal/testkit"
)

func writeSampleFile(t *testing.T, dir, name string, values []float64) string {
	t.Helper()
	path := filepath.Join(dir, name)
	var content string
	for _, v := range values {
		content += fmt.Sprintf("%v\n", v)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newService(t *testing.T, kit *testkit.Kit) *CompareService {
	t.Helper()
	engine := simulation.NewEngine(kit.RNGAdapter())
	engine.SetWorkers(2)
	return NewCompareService(engine, kit.RunLedger(), internal.NewLogger(internal.LogLevelError))
}

func TestCompare_EndToEnd(t *testing.T) {
	kit := testkit.NewKit()
	dir := t.TempDir()
	baselinePath := writeSampleFile(t, dir, "baseline.txt", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	targetPath := writeSampleFile(t, dir, "target.txt", []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19})

	service := newService(t, kit)
	outcome, err := service.Compare(context.Background(), CompareRequest{
		BaselineRef: baselinePath,
		TargetRef:   targetPath,
		Iterations:  1000,
		Seed:        42,
		Save:        true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if avg, ok := outcome.BaselineSummary.Get("avg"); !ok || avg != 5.5 {
		t.Errorf("baseline avg = %v, want 5.5", avg)
	}
	if avg, ok := outcome.TargetSummary.Get("avg"); !ok || avg != 14.5 {
		t.Errorf("target avg = %v, want 14.5", avg)
	}
	if outcome.BaselineProfile.Count != 10 || outcome.TargetProfile.Count != 10 {
		t.Error("profiles missing")
	}

	if len(outcome.Results) != 8 {
		t.Fatalf("expected 8 results, got %d", len(outcome.Results))
	}
	if ratio := outcome.Results[0].GtRatio(); ratio < 0.95 {
		t.Errorf("avg p(target>sim) = %v, want > 0.95", ratio)
	}

	// Save=true must land the run in the ledger.
	run, err := kit.RunLedger().GetRun(context.Background(), outcome.RunID)
	if err != nil {
		t.Fatalf("persisted run not found: %v", err)
	}
	if run.Iterations != 1000 || len(run.Results) != 8 {
		t.Errorf("persisted run incomplete: %+v", run)
	}
	if run.BaselineCount != 10 || run.TargetCount != 10 {
		t.Errorf("persisted sample counts = %d/%d, want 10/10", run.BaselineCount, run.TargetCount)
	}
}

func TestCompare_MissingFileFailsWholeOperation(t *testing.T) {
	kit := testkit.NewKit()
	service := newService(t, kit)

	_, err := service.Compare(context.Background(), CompareRequest{
		BaselineRef: filepath.Join(t.TempDir(), "absent.txt"),
		TargetRef:   "irrelevant.txt",
		Iterations:  10,
		Seed:        1,
	})
	if err == nil {
		t.Fatal("expected error for missing baseline file")
	}

	runs, err := kit.RunLedger().ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Error("no partial run should be persisted after a failure")
	}
}

func TestCompareMany(t *testing.T) {
	kit := testkit.NewKit()
	dir := t.TempDir()
	baselinePath := writeSampleFile(t, dir, "baseline.txt", []float64{1, 2, 3, 4, 5})
	targetA := writeSampleFile(t, dir, "a.txt", []float64{6, 7, 8})
	targetB := writeSampleFile(t, dir, "b.txt", []float64{0, 1, 2})

	service := newService(t, kit)
	outcomes, err := service.CompareMany(context.Background(), CompareRequest{
		BaselineRef: baselinePath,
		Iterations:  200,
		Seed:        9,
	}, []string{targetA, targetB})
	if err != nil {
		t.Fatal(err)
	}

	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Results[0].GtRatio() < 0.9 {
		t.Errorf("target a sits above the baseline, gt ratio = %v", outcomes[0].Results[0].GtRatio())
	}
	if outcomes[1].Results[0].LtRatio() < 0.5 {
		t.Errorf("target b sits below the baseline, lt ratio = %v", outcomes[1].Results[0].LtRatio())
	}
}

func TestCompareMany_CanceledContext(t *testing.T) {
	kit := testkit.NewKit()
	dir := t.TempDir()
	baselinePath := writeSampleFile(t, dir, "baseline.txt", []float64{1, 2, 3, 4, 5})
	targets := []string{
		writeSampleFile(t, dir, "a.txt", []float64{6, 7, 8}),
		writeSampleFile(t, dir, "b.txt", []float64{0, 1, 2}),
		writeSampleFile(t, dir, "c.txt", []float64{3, 4, 5}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := newService(t, kit)
	_, err := service.CompareMany(ctx, CompareRequest{
		BaselineRef: baselinePath,
		Iterations:  500,
		Seed:        3,
	}, targets)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	kit := testkit.NewKit()
	dir := t.TempDir()
	path := writeSampleFile(t, dir, "sample.txt", []float64{4, 1, 3, 2})

	service := newService(t, kit)
	summary, profile, err := service.Summarize(context.Background(), path, "")
	if err != nil {
		t.Fatal(err)
	}

	if summary.Count != 4 {
		t.Errorf("Count = %d, want 4", summary.Count)
	}
	if avg, _ := summary.Get("avg"); avg != 2.5 {
		t.Errorf("avg = %v, want 2.5", avg)
	}
	if profile.Min != 1 || profile.Max != 4 {
		t.Errorf("profile min/max = %v/%v, want 1/4", profile.Min, profile.Max)
	}
}
