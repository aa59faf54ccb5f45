package manager

import "context"

// beginInference waits for the single in-flight slot. ctx bounds the wait
// only. Returns a release func to be deferred.
func (m *Manager) beginInference(ctx context.Context) (func(), error) {
	m.waiting.Add(1)
	inferenceWaiting.Inc()
	defer func() {
		m.waiting.Add(-1)
		inferenceWaiting.Dec()
	}()

	// Fast path: a canceled request never takes the slot.
	if err := ctx.Err(); err != nil {
		return func() {}, err
	}
	select {
	case m.genCh <- struct{}{}:
		return func() { <-m.genCh }, nil
	case <-ctx.Done():
		return func() {}, ctx.Err()
	}
}
