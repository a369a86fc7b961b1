package stats

import (
	"testing"
)

func TestDefaultEstimators_Order(t *testing.T) {
	want := []string{"avg", "min", "p50", "p75", "p90", "p95", "p99", "max"}

	ests := DefaultEstimators()
	if len(ests) != len(want) {
		t.Fatalf("expected %d estimators, got %d", len(want), len(ests))
	}
	for i, name := range want {
		if ests[i].Name != name {
			t.Errorf("estimator[%d] = %s, want %s", i, ests[i].Name, name)
		}
	}
}

func TestDefaultEstimators_KnownValues(t *testing.T) {
	s := sorted(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)

	want := map[string]float64{
		"avg": 5.5,
		"min": 1,
		"p50": 5.5,
		"max": 10,
	}

	for _, est := range DefaultEstimators() {
		expected, check := want[est.Name]
		if !check {
			continue
		}
		v, err := est.Fn(s)
		if err != nil {
			t.Fatalf("%s: %v", est.Name, err)
		}
		if v != expected {
			t.Errorf("%s = %v, want %v", est.Name, v, expected)
		}
	}
}

func TestDefaultEstimators_Deterministic(t *testing.T) {
	s := sorted(0.5, 1.5, 2.5, 9)

	for _, est := range DefaultEstimators() {
		first, err := est.Fn(s)
		if err != nil {
			t.Fatalf("%s: %v", est.Name, err)
		}
		second, err := est.Fn(s)
		if err != nil {
			t.Fatalf("%s: %v", est.Name, err)
		}
		if first != second {
			t.Errorf("%s is not deterministic: %v then %v", est.Name, first, second)
		}
		if len(s) != 4 || s[0] != 0.5 || s[3] != 9 {
			t.Fatalf("%s mutated its input sample: %v", est.Name, s)
		}
	}
}

func TestSummarize_PreservesRegistryOrder(t *testing.T) {
	s := sorted(2, 4, 6, 8)

	summary, err := Summarize(s, DefaultEstimators())
	if err != nil {
		t.Fatal(err)
	}

	if summary.Count != 4 {
		t.Errorf("Count = %d, want 4", summary.Count)
	}
	if len(summary.Values) != 8 {
		t.Fatalf("expected 8 values, got %d", len(summary.Values))
	}
	if summary.Values[0].Name != "avg" || summary.Values[0].Value != 5 {
		t.Errorf("first value = %+v, want avg=5", summary.Values[0])
	}
	if summary.Values[7].Name != "max" || summary.Values[7].Value != 8 {
		t.Errorf("last value = %+v, want max=8", summary.Values[7])
	}

	if v, ok := summary.Get("p50"); !ok || v != 5 {
		t.Errorf("Get(p50) = %v,%v, want 5,true", v, ok)
	}
	if _, ok := summary.Get("p33"); ok {
		t.Error("Get(p33) should report missing")
	}
}

func TestSummarize_EmptySampleFails(t *testing.T) {
	_, err := Summarize(sorted(), DefaultEstimators())
	if err == nil {
		t.Fatal("expected error for empty sample")
	}
}
