package gliner

import (
	"errors"
	"fmt"
	"os"
)

// ErrRuntimeUnavailable is returned by Load in builds without onnxruntime.
var ErrRuntimeUnavailable = errors.New("onnx runtime support not built (missing 'onnxruntime' build tag)")

// Engine runs GLiNER inference. Implementations are not goroutine-safe and
// an Inference call is not cancellable once started.
type Engine interface {
	Inference(in ModelInput) (*RawOutput, error)
	Close() error
}

// Load builds an engine from the tokenizer and model artifacts.
func Load(files ModelFiles, params Params) (Engine, error) {
	if err := files.check(); err != nil {
		return nil, err
	}
	return loadONNX(files, params)
}

func (f ModelFiles) check() error {
	for _, p := range []struct{ what, path string }{{"tokenizer", f.Tokenizer}, {"model", f.Model}} {
		if p.path == "" {
			return fmt.Errorf("%s path is empty", p.what)
		}
		fi, err := os.Stat(p.path)
		if err != nil {
			return fmt.Errorf("%s file: %w", p.what, err)
		}
		if fi.IsDir() {
			return fmt.Errorf("%s file: %s is a directory", p.what, p.path)
		}
	}
	return nil
}
