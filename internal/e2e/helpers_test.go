package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"glinerd/internal/gliner"
	"glinerd/internal/httpapi"
	"glinerd/internal/manager"
	"glinerd/pkg/types"
)

// patternEngine tags every occurrence of a fixed phrase with a label.
type patternEngine struct {
	phrases map[string]string
	delay   time.Duration

	active    atomic.Int32
	maxActive atomic.Int32
}

func (e *patternEngine) Inference(in gliner.ModelInput) (*gliner.RawOutput, error) {
	n := e.active.Add(1)
	defer e.active.Add(-1)
	for {
		peak := e.maxActive.Load()
		if n <= peak || e.maxActive.CompareAndSwap(peak, n) {
			break
		}
	}
	if e.delay > 0 {
		time.Sleep(e.delay)
	}
	out := &gliner.RawOutput{Spans: make([][]gliner.Span, len(in.Texts))}
	for i, text := range in.Texts {
		for phrase, label := range e.phrases {
			if at := strings.Index(text, phrase); at >= 0 {
				out.Spans[i] = append(out.Spans[i], gliner.NewSpan(phrase, label, i, at, at+len(phrase), 0.9))
			}
		}
	}
	return out, nil
}

func (e *patternEngine) Close() error { return nil }

func newServer(t *testing.T) (*httptest.Server, *manager.Manager) {
	t.Helper()
	mgr := manager.New("test/gliner")
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(srv.Close)
	return srv, mgr
}

func loadEngine(t *testing.T, mgr *manager.Manager, e gliner.Engine) {
	t.Helper()
	err := mgr.Initialize(context.Background(), func(context.Context) (gliner.Engine, error) { return e, nil })
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func detect(t *testing.T, base, text string) types.Envelope[types.ExtractionResult] {
	t.Helper()
	payload, _ := json.Marshal(types.DetectRequest{Text: text})
	resp, body := httpPostJSON(t, base+"/api/pii/detect", payload)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("detect status=%d body=%s", resp.StatusCode, body)
	}
	var env types.Envelope[types.ExtractionResult]
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode: %v (%s)", err, body)
	}
	return env
}
