package manager

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"glinerd/internal/gliner"
)

func TestInitialize_Success(t *testing.T) {
	pub := NewMemoryPublisher()
	m := NewWithConfig(ManagerConfig{ModelID: "org/m", Publisher: pub})
	if m.State() != StateEmpty || m.Ready() {
		t.Fatalf("new manager should be empty")
	}
	eng := &fakeEngine{}
	if err := m.Initialize(context.Background(), loaderFor(eng)); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if !m.Ready() || m.State() != StateLoaded {
		t.Fatalf("expected loaded, got %s", m.State())
	}
	got, ok := m.Get()
	if !ok || got != eng {
		t.Fatalf("Get returned %v,%v", got, ok)
	}
	names := pub.Names()
	if len(names) != 2 || names[0] != EventModelLoadStarted || names[1] != EventModelLoaded {
		t.Fatalf("unexpected events: %v", names)
	}
}

func TestInitialize_IsSingleShot(t *testing.T) {
	m := loadedManager(&fakeEngine{})
	err := m.Initialize(context.Background(), loaderFor(&fakeEngine{}))
	if !IsInitError(err) {
		t.Fatalf("expected InitError on second call, got %v", err)
	}
	if !m.Ready() {
		t.Fatalf("second call must not unload the slot")
	}
}

func TestInitialize_FailureLeavesSlotEmpty(t *testing.T) {
	pub := NewMemoryPublisher()
	m := NewWithConfig(ManagerConfig{Publisher: pub})
	err := m.Initialize(context.Background(), failingLoader("tokenizer file: missing"))
	if !IsInitError(err) {
		t.Fatalf("expected InitError, got %v", err)
	}
	if !strings.Contains(err.Error(), "tokenizer file: missing") {
		t.Fatalf("cause lost: %v", err)
	}
	if _, ok := m.Get(); ok {
		t.Fatalf("failed init must leave slot without engine")
	}
	if m.State() != StateFailed || m.Status().Error == "" {
		t.Fatalf("expected failed state with error, got %+v", m.Status())
	}
	// a later attempt with a good loader still fails
	if err := m.Initialize(context.Background(), loaderFor(&fakeEngine{})); !IsInitError(err) {
		t.Fatalf("expected InitError on retry, got %v", err)
	}
	if _, ok := m.Get(); ok {
		t.Fatalf("slot must stay empty after failed init")
	}
	if names := pub.Names(); names[len(names)-1] != EventModelLoadFailed {
		t.Fatalf("unexpected events: %v", names)
	}
}

func TestInitialize_RecoversLoaderPanic(t *testing.T) {
	m := New("")
	err := m.Initialize(context.Background(), func(context.Context) (gliner.Engine, error) { panic("boom") })
	if !IsInitError(err) || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected InitError with panic value, got %v", err)
	}
}

func TestInitialize_NilLoaderAndNilEngine(t *testing.T) {
	if err := New("").Initialize(context.Background(), nil); !IsInitError(err) {
		t.Fatalf("nil loader: %v", err)
	}
	err := New("").Initialize(context.Background(), func(context.Context) (gliner.Engine, error) { return nil, nil })
	if !IsInitError(err) {
		t.Fatalf("nil engine: %v", err)
	}
}

func TestEngineLoader_MissingFiles(t *testing.T) {
	d := t.TempDir()
	files := gliner.ModelFiles{Tokenizer: filepath.Join(d, "tokenizer.json"), Model: filepath.Join(d, "model.onnx")}
	m := New("")
	err := m.Initialize(context.Background(), EngineLoader(files, gliner.DefaultParams()))
	if !IsInitError(err) || !strings.Contains(err.Error(), "tokenizer") {
		t.Fatalf("expected tokenizer error, got %v", err)
	}
}

func TestEngineLoader_ModelIsDirectory(t *testing.T) {
	d := t.TempDir()
	files := gliner.ModelFiles{Tokenizer: filepath.Join(d, "tokenizer.json"), Model: d}
	if err := os.WriteFile(files.Tokenizer, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := EngineLoader(files, gliner.DefaultParams())(context.Background())
	if err == nil || !strings.Contains(err.Error(), "is a directory") {
		t.Fatalf("expected directory error, got %v", err)
	}
}

func TestEngineLoader_StubRuntime(t *testing.T) {
	d := t.TempDir()
	files := gliner.ModelFiles{Tokenizer: filepath.Join(d, "tokenizer.json"), Model: filepath.Join(d, "model.onnx")}
	for _, p := range []string{files.Tokenizer, files.Model} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	_, err := EngineLoader(files, gliner.DefaultParams())(context.Background())
	if err == nil {
		t.Fatalf("expected load error from placeholder artifacts")
	}
}

func TestClose_ClosesEngine(t *testing.T) {
	eng := &fakeEngine{}
	m := loadedManager(eng)
	if err := m.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !eng.closed.Load() {
		t.Fatalf("engine not closed")
	}
	if err := New("").Close(context.Background()); err != nil {
		t.Fatalf("close on empty slot: %v", err)
	}
}
