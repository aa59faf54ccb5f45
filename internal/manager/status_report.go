package manager

import (
	"glinerd/pkg/types"
)

// Status builds a detailed status response for /api/status.
func (m *Manager) Status() types.StatusResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	resp := types.StatusResponse{
		Model:           m.modelID,
		State:           string(m.state),
		Error:           m.err,
		Labels:          m.Labels(),
		Waiting:         int(m.waiting.Load()),
		Inflight:        len(m.genCh),
		InferencesTotal: m.inferences.Load(),
		InferenceErrors: m.failures.Load(),
		UptimeSeconds:   int64(m.now().Sub(m.startTime).Seconds()),
	}
	if !m.loadedAt.IsZero() {
		resp.LoadedAtUnix = m.loadedAt.Unix()
	}
	return resp
}
