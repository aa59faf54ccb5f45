//go:build !onnxruntime

package gliner

// loadONNX refuses to build an engine without the onnxruntime build tag.
func loadONNX(files ModelFiles, params Params) (Engine, error) {
	return nil, ErrRuntimeUnavailable
}
