package manager

import (
	"context"
	"errors"
	"fmt"

	"glinerd/internal/gliner"
	"glinerd/pkg/types"
)

// Run calls engine.Inference while holding the process-wide inference slot.
// ctx can abort the wait for the slot but never the engine call itself.
// Engine errors and panics come back as inference errors.
func (m *Manager) Run(ctx context.Context, engine gliner.Engine, in gliner.ModelInput) (*gliner.RawOutput, error) {
	release, err := m.beginInference(ctx)
	if err != nil {
		m.recordFailure(err)
		return nil, ErrInference(err)
	}
	defer release()

	start := m.now()
	raw, err := callEngine(engine, in)
	inferenceDuration.Observe(m.now().Sub(start).Seconds())
	if err == nil && raw == nil {
		err = errors.New("engine returned no output")
	}
	if err != nil {
		m.recordFailure(err)
		return nil, ErrInference(err)
	}
	m.inferences.Add(1)
	inferenceTotal.WithLabelValues("ok").Inc()
	return raw, nil
}

func callEngine(engine gliner.Engine, in gliner.ModelInput) (raw *gliner.RawOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			raw, err = nil, fmt.Errorf("engine panic: %v", r)
		}
	}()
	return engine.Inference(in)
}

func (m *Manager) recordFailure(err error) {
	m.failures.Add(1)
	inferenceTotal.WithLabelValues("error").Inc()
	m.pub.Publish(Event{Name: EventInferenceFailed, ModelID: m.modelID, Fields: map[string]any{"error": err.Error()}})
	m.log.Warn().Err(err).Msg("inference failed")
}

// Detect runs one detection request through the slot:
// model check, normalization, exclusive inference, projection.
// Every failure is returned as a failure envelope.
func (m *Manager) Detect(ctx context.Context, text string) types.Envelope[types.ExtractionResult] {
	res, err := m.detect(ctx, text)
	if err != nil {
		return types.Failure[types.ExtractionResult](err.Error())
	}
	return types.Success(res)
}

func (m *Manager) detect(ctx context.Context, text string) (types.ExtractionResult, error) {
	engine, ok := m.Get()
	if !ok {
		return types.ExtractionResult{}, ErrModelNotLoaded()
	}
	in, err := Normalize(text, m.labels)
	if err != nil {
		return types.ExtractionResult{}, err
	}
	start := m.now()
	raw, err := m.Run(ctx, engine, in)
	if err != nil {
		return types.ExtractionResult{}, err
	}
	res := Project(raw, text)
	m.pub.Publish(Event{Name: EventInferenceCompleted, ModelID: m.modelID, Fields: map[string]any{
		"entities":    res.TotalEntities,
		"duration_ms": m.now().Sub(start).Milliseconds(),
	}})
	return res, nil
}
