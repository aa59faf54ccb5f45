// Package manager owns the single GLiNER model slot and coordinates every
// detection request against it. It is structured into small files by concern:
//
//   - manager.go: core Manager type, labels, readiness and shutdown.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: slot State values and the Loader signature.
//   - errors.go: error types and helpers (IsModelNotLoaded, IsInputError, ...).
//   - slot.go: one-shot Initialize and Get on the model slot.
//   - loader.go: EngineLoader, building an engine from resolved artifact files.
//   - admission.go: the single in-flight inference slot.
//   - normalize.go: text + labels to gliner.ModelInput.
//   - infer.go: Run (exclusive engine call) and Detect (request state machine).
//   - project.go: RawOutput to the flat wire result.
//   - metrics.go, events.go: Prometheus series and lifecycle events.
//   - status_report.go: Status for /api/status.
//
// Detection failures never escape as Go errors from Detect; they are folded
// into a failure envelope carrying the error's message.
package manager
