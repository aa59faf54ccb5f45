package manager

import (
	"context"

	"glinerd/internal/gliner"
)

// EngineLoader returns a Loader that builds the engine from files. gliner.Load
// rejects missing or misplaced artifacts before touching the runtime.
func EngineLoader(files gliner.ModelFiles, params gliner.Params) Loader {
	return func(ctx context.Context) (gliner.Engine, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return gliner.Load(files, params)
	}
}
