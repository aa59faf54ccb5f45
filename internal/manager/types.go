package manager

import (
	"context"

	"glinerd/internal/gliner"
)

// State is the lifecycle state of the model slot.
type State string

const (
	StateEmpty   State = "empty"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// Loader builds the engine for the slot. It is called at most once per Manager.
type Loader func(ctx context.Context) (gliner.Engine, error)
