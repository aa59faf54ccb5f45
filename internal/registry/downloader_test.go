package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

func TestPull_WritesArtifacts(t *testing.T) {
	var auth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/org/m/resolve/main/tokenizer.json":
			_, _ = w.Write([]byte(`{"model":{}}`))
		case "/org/m/resolve/main/onnx/model.onnx":
			_, _ = w.Write([]byte("graph"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	d := NewDownloader(zerolog.Nop())
	d.HubURL = srv.URL
	d.Token = "tok"
	dir := t.TempDir()
	res, err := d.Pull(context.Background(), "org/m", dir)
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if res.Bytes != int64(len(`{"model":{}}`)+len("graph")) {
		t.Fatalf("bytes=%d", res.Bytes)
	}
	if err := Validate(res.Files); err != nil {
		t.Fatalf("validate: %v", err)
	}
	b, _ := os.ReadFile(res.Files.Model)
	if string(b) != "graph" {
		t.Fatalf("model content %q", b)
	}
	if got, _ := auth.Load().(string); got != "Bearer tok" {
		t.Fatalf("auth header %q", got)
	}
	models, err := LoadDir(dir)
	if err != nil || len(models) != 1 || models[0].ID != "org/m" {
		t.Fatalf("LoadDir after pull: %+v err=%v", models, err)
	}
}

func TestPull_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	d := NewDownloader(zerolog.Nop())
	d.HubURL = srv.URL
	dir := t.TempDir()
	if _, err := d.Pull(context.Background(), "org/missing", dir); err == nil {
		t.Fatalf("expected error on 404")
	}
	if _, err := os.Stat(dir + "/org/missing/tokenizer.json"); err == nil {
		t.Fatalf("no file should be written on failure")
	}
}

func TestPull_InvalidID(t *testing.T) {
	d := NewDownloader(zerolog.Nop())
	if _, err := d.Pull(context.Background(), "../x", t.TempDir()); err == nil {
		t.Fatalf("expected invalid id error")
	}
}
