//go:build !onnxruntime

package gliner

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(ModelFiles{Tokenizer: filepath.Join(dir, "tokenizer.json"), Model: filepath.Join(dir, "model.onnx")}, DefaultParams())
	if err == nil || !strings.Contains(err.Error(), "tokenizer file") {
		t.Fatalf("expected tokenizer file error, got %v", err)
	}
}

func TestLoad_StubReportsRuntimeUnavailable(t *testing.T) {
	dir := t.TempDir()
	tok := filepath.Join(dir, "tokenizer.json")
	mdl := filepath.Join(dir, "model.onnx")
	for _, p := range []string{tok, mdl} {
		if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if _, err := Load(ModelFiles{Tokenizer: tok, Model: mdl}, DefaultParams()); !errors.Is(err, ErrRuntimeUnavailable) {
		t.Fatalf("expected ErrRuntimeUnavailable, got %v", err)
	}
}

func TestLoad_DirectoryRejected(t *testing.T) {
	dir := t.TempDir()
	tok := filepath.Join(dir, "tokenizer.json")
	if err := os.WriteFile(tok, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(ModelFiles{Tokenizer: tok, Model: dir}, DefaultParams())
	if err == nil || !strings.Contains(err.Error(), "is a directory") {
		t.Fatalf("expected directory error, got %v", err)
	}
}
