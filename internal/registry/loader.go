package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"glinerd/internal/common/fsutil"
	"glinerd/internal/gliner"
	"glinerd/pkg/types"
)

// Artifact file names inside a model directory.
const (
	TokenizerFile = "tokenizer.json"
	ModelFile     = "model.onnx"
)

// ErrInvalidModelID is returned for ids that are empty or escape the models dir.
var ErrInvalidModelID = errors.New("invalid model id")

// Resolve derives the artifact paths for modelID under modelsDir:
// <modelsDir>/<modelID>/tokenizer.json and <modelsDir>/<modelID>/model.onnx.
// It does not touch the filesystem beyond expanding '~'.
func Resolve(modelsDir, modelID string) (gliner.ModelFiles, error) {
	if err := checkID(modelID); err != nil {
		return gliner.ModelFiles{}, err
	}
	base, err := fsutil.ExpandHome(modelsDir)
	if err != nil {
		return gliner.ModelFiles{}, err
	}
	dir := filepath.Join(base, filepath.FromSlash(modelID))
	return gliner.ModelFiles{
		Tokenizer: filepath.Join(dir, TokenizerFile),
		Model:     filepath.Join(dir, ModelFile),
	}, nil
}

// Validate reports the first artifact that is missing or not a regular file.
func Validate(files gliner.ModelFiles) error {
	if _, ok := fsutil.FileSize(files.Tokenizer); !ok {
		return fmt.Errorf("tokenizer not found: %s", files.Tokenizer)
	}
	if _, ok := fsutil.FileSize(files.Model); !ok {
		return fmt.Errorf("model not found: %s", files.Model)
	}
	return nil
}

func checkID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidModelID)
	}
	if strings.HasPrefix(id, "/") || strings.Contains(id, "\\") {
		return fmt.Errorf("%w: %q", ErrInvalidModelID, id)
	}
	for _, part := range strings.Split(id, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidModelID, id)
		}
	}
	return nil
}

// LoadDir scans modelsDir for installed models. A model is any directory,
// at depth one (<name>) or two (<org>/<name>), holding both artifacts.
// IDs use forward slashes and the result is sorted by ID.
func LoadDir(modelsDir string) ([]types.ModelInfo, error) {
	base, err := fsutil.ExpandHome(modelsDir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.ModelInfo
	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || p == abs {
			return nil
		}
		rel, err := filepath.Rel(abs, p)
		if err != nil {
			return err
		}
		depth := strings.Count(filepath.ToSlash(rel), "/") + 1
		if depth > 2 {
			return fs.SkipDir
		}
		files := gliner.ModelFiles{
			Tokenizer: filepath.Join(p, TokenizerFile),
			Model:     filepath.Join(p, ModelFile),
		}
		if Validate(files) != nil {
			return nil
		}
		tokSize, _ := fsutil.FileSize(files.Tokenizer)
		modelSize, _ := fsutil.FileSize(files.Model)
		models = append(models, types.ModelInfo{
			ID:            filepath.ToSlash(rel),
			TokenizerPath: files.Tokenizer,
			ModelPath:     files.Model,
			SizeBytes:     tokSize + modelSize,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan models: %w", err)
	}
	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })
	return models, nil
}
