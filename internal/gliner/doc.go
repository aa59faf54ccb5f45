// Package gliner is the boundary to the GLiNER span-mode inference engine.
//
// It owns the engine's input representation (ModelInput), its raw nested
// output (RawOutput of Span values) and the engine itself. The native engine
// runs the exported ONNX graph through onnxruntime and is compiled only with
// `-tags=onnxruntime`; default builds get a stub whose Load fails with
// ErrRuntimeUnavailable, so CGO-free binaries still start and report the
// model as not loaded.
//
// Engines are not safe for concurrent use. Callers serialize Inference.
package gliner
