package types

// Entity is one detected span in the flattened detection result.
type Entity struct {
	// Surface text of the span.
	// example: John Doe
	Text string `json:"text" example:"John Doe"`
	// Label the span was classified as.
	// example: person
	Label string `json:"label" example:"person"`
	// Index of the input sequence the span came from.
	// example: 0
	Sequence int `json:"sequence" example:"0"`
	// Model confidence in [0,1].
	// example: 0.95
	Probability float32 `json:"probability" example:"0.95"`
}

// ExtractionResult is the data payload of a successful detection.
type ExtractionResult struct {
	// The input text, echoed back.
	// example: My name is John Doe
	Text string `json:"text" example:"My name is John Doe"`
	// Entities in engine emission order.
	Entities []Entity `json:"entities"`
	// Always len(entities).
	// example: 1
	TotalEntities int `json:"total_entities" example:"1"`
}

// ModelInfo describes a model installed under the models directory.
type ModelInfo struct {
	// Model identifier, relative to the models directory.
	// example: onnx-community/gliner-multitask-large-v0.5
	ID string `json:"id" example:"onnx-community/gliner-multitask-large-v0.5"`
	// Absolute path to tokenizer.json.
	TokenizerPath string `json:"tokenizer_path"`
	// Absolute path to model.onnx.
	ModelPath string `json:"model_path"`
	// Size of model.onnx in bytes.
	// example: 1784912345
	SizeBytes int64 `json:"size_bytes" example:"1784912345"`
}
