package manager

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultModelID = "onnx-community/gliner-multitask-large-v0.5"
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	// ModelID is reported in status and events; it does not select files.
	ModelID   string
	Logger    *zerolog.Logger
	Publisher EventPublisher
	// now is overridable in tests.
	now func() time.Time
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		state:   StateEmpty,
		modelID: cfg.ModelID,
		genCh:   make(chan struct{}, 1),
		labels:  DefaultLabels(),
		pub:     cfg.Publisher,
		now:     cfg.now,
	}
	// Apply defaults if unset
	if m.modelID == "" {
		m.modelID = defaultModelID
	}
	if m.pub == nil {
		m.pub = noopPublisher{}
	}
	if m.now == nil {
		m.now = time.Now
	}
	if cfg.Logger != nil {
		m.log = *cfg.Logger
	} else {
		m.log = zerolog.Nop()
	}
	m.startTime = m.now()
	return m
}
