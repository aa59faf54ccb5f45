package manager

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"glinerd/internal/gliner"
)

// fakeEngine is an in-memory engine used for tests. It records the peak
// number of concurrent Inference calls.
type fakeEngine struct {
	spans    func(in gliner.ModelInput) [][]gliner.Span
	err      error
	panicMsg string
	delay    time.Duration

	calls     atomic.Int32
	active    atomic.Int32
	maxActive atomic.Int32
	closed    atomic.Bool
}

func (f *fakeEngine) Inference(in gliner.ModelInput) (*gliner.RawOutput, error) {
	f.calls.Add(1)
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		peak := f.maxActive.Load()
		if n <= peak || f.maxActive.CompareAndSwap(peak, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.err != nil {
		return nil, f.err
	}
	out := &gliner.RawOutput{Spans: make([][]gliner.Span, len(in.Texts))}
	if f.spans != nil {
		out.Spans = f.spans(in)
	}
	return out, nil
}

func (f *fakeEngine) Close() error {
	f.closed.Store(true)
	return nil
}

// johnDoe yields one person span when the text contains "John Doe".
func johnDoe(in gliner.ModelInput) [][]gliner.Span {
	out := make([][]gliner.Span, len(in.Texts))
	for i, t := range in.Texts {
		for _, w := range in.Words[i] {
			if w.Text == "John" {
				end := w.Start + len("John Doe")
				if end <= len(t) && t[w.Start:end] == "John Doe" {
					out[i] = append(out[i], gliner.NewSpan("John Doe", "person", i, w.Start, end, 0.95))
				}
			}
		}
	}
	return out
}

func loaderFor(e gliner.Engine) Loader {
	return func(context.Context) (gliner.Engine, error) { return e, nil }
}

func failingLoader(msg string) Loader {
	return func(context.Context) (gliner.Engine, error) { return nil, errors.New(msg) }
}

func loadedManager(e gliner.Engine) *Manager {
	m := New("test/model")
	if err := m.Initialize(context.Background(), loaderFor(e)); err != nil {
		panic(err)
	}
	return m
}
