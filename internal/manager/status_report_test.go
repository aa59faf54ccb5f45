package manager

import (
	"context"
	"testing"
	"time"
)

func TestStatus_Reports(t *testing.T) {
	clock := time.Unix(1_700_000_000, 0)
	m := NewWithConfig(ManagerConfig{ModelID: "org/m", now: func() time.Time { return clock }})
	st := m.Status()
	if st.Model != "org/m" || st.State != "empty" || st.LoadedAtUnix != 0 || len(st.Labels) != 5 {
		t.Fatalf("unexpected status: %+v", st)
	}
	clock = clock.Add(90 * time.Second)
	if err := m.Initialize(context.Background(), loaderFor(&fakeEngine{})); err != nil {
		t.Fatalf("init: %v", err)
	}
	m.Detect(context.Background(), "hi")
	st = m.Status()
	if st.State != "loaded" || st.UptimeSeconds != 90 || st.LoadedAtUnix != clock.Unix() {
		t.Fatalf("unexpected status: %+v", st)
	}
	if st.InferencesTotal != 1 || st.Inflight != 0 || st.Waiting != 0 {
		t.Fatalf("unexpected counters: %+v", st)
	}
}

func TestErrors_Predicates(t *testing.T) {
	if !IsModelNotLoaded(ErrModelNotLoaded()) || IsInputError(ErrModelNotLoaded()) {
		t.Fatalf("model not loaded predicate")
	}
	cause := context.Canceled
	if err := ErrInference(cause); !IsInferenceError(err) || err.Error() != "Inference failed: context canceled" {
		t.Fatalf("inference error: %v", err)
	}
	if err := ErrInput(cause); !IsInputError(err) || err.Error() != "Failed to create input: context canceled" {
		t.Fatalf("input error: %v", err)
	}
}
