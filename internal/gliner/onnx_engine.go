//go:build onnxruntime

package gliner

import (
	"fmt"
	"os"
	"sync"

	"github.com/gomlx/go-huggingface/tokenizers"
	"github.com/gomlx/go-huggingface/tokenizers/api"
	"github.com/gomlx/go-huggingface/tokenizers/hftokenizer"
	ort "github.com/yalue/onnxruntime_go"
)

// DeBERTa-v3 special token ids, used when the tokenizer cannot report them.
const (
	fallbackPadID = 0
	fallbackCLSID = 1
	fallbackSEPID = 2
)

var (
	ortInitOnce sync.Once
	ortInitErr  error
)

// initRuntime initializes the onnxruntime environment once per process.
// ONNXRUNTIME_LIB points at libonnxruntime when it is not on the loader path.
func initRuntime() error {
	ortInitOnce.Do(func() {
		if lib := os.Getenv("ONNXRUNTIME_LIB"); lib != "" {
			ort.SetSharedLibraryPath(lib)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

type onnxEngine struct {
	session     *ort.DynamicAdvancedSession
	opts        *ort.SessionOptions
	tok         tokenizers.Tokenizer
	params      Params
	inputNames  []string
	outputNames []string
	clsID       int
	sepID       int
	padID       int
}

func loadONNX(files ModelFiles, params Params) (Engine, error) {
	if err := initRuntime(); err != nil {
		return nil, fmt.Errorf("initializing onnxruntime: %w", err)
	}
	tok, err := hftokenizer.NewFromFile(nil, files.Tokenizer)
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer: %w", err)
	}
	inputs, outputs, err := ort.GetInputOutputInfo(files.Model)
	if err != nil {
		return nil, fmt.Errorf("reading model io: %w", err)
	}
	e := &onnxEngine{
		tok:    tok,
		params: params,
		clsID:  specialID(tok, api.TokClassification, fallbackCLSID),
		sepID:  specialID(tok, api.TokEndOfSentence, fallbackSEPID),
		padID:  specialID(tok, api.TokPad, fallbackPadID),
	}
	for _, in := range inputs {
		e.inputNames = append(e.inputNames, in.Name)
	}
	for _, out := range outputs {
		e.outputNames = append(e.outputNames, out.Name)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	if params.Threads > 0 {
		if err := opts.SetIntraOpNumThreads(params.Threads); err != nil {
			opts.Destroy()
			return nil, fmt.Errorf("setting thread count: %w", err)
		}
	}
	session, err := ort.NewDynamicAdvancedSession(files.Model, e.inputNames, e.outputNames, opts)
	if err != nil {
		opts.Destroy()
		return nil, fmt.Errorf("creating onnx session: %w", err)
	}
	e.session = session
	e.opts = opts
	return e, nil
}

func specialID(tok tokenizers.Tokenizer, which api.SpecialToken, fallback int) int {
	if id, err := tok.SpecialTokenID(which); err == nil && id >= 0 {
		return id
	}
	return fallback
}

func (e *onnxEngine) Inference(in ModelInput) (*RawOutput, error) {
	if e.session == nil {
		return nil, fmt.Errorf("engine is closed")
	}
	out := &RawOutput{Spans: make([][]Span, len(in.Texts))}
	for i, text := range in.Texts {
		spans, err := e.runSequence(i, text, in.Words[i], in.Labels)
		if err != nil {
			return nil, fmt.Errorf("sequence %d: %w", i, err)
		}
		out.Spans[i] = spans
	}
	return out, nil
}

// encoded is one sequence laid out for the span-mode graph.
type encoded struct {
	inputIDs      []int64
	attentionMask []int64
	wordsMask     []int64
	numWords      int
}

// encode builds [CLS] <<ENT>> l1 ... <<ENT>> ln <<SEP>> w1 ... wm [SEP], with
// words_mask marking the first sub-token of each word (1-based). Words past
// MaxLength are dropped.
func (e *onnxEngine) encode(words []Word, labels []string) encoded {
	var enc encoded
	push := func(id int, word int64) {
		enc.inputIDs = append(enc.inputIDs, int64(id))
		enc.attentionMask = append(enc.attentionMask, 1)
		enc.wordsMask = append(enc.wordsMask, word)
	}
	push(e.clsID, 0)
	for _, l := range labels {
		for _, id := range e.pieces("<<ENT>>") {
			push(id, 0)
		}
		for _, id := range e.pieces(l) {
			push(id, 0)
		}
	}
	for _, id := range e.pieces("<<SEP>>") {
		push(id, 0)
	}
	limit := e.params.MaxLength - 1
	for wi, w := range words {
		ids := e.pieces(w.Text)
		if len(ids) == 0 {
			ids = []int{e.padID}
		}
		if len(enc.inputIDs)+len(ids) > limit {
			break
		}
		for j, id := range ids {
			mark := int64(0)
			if j == 0 {
				mark = int64(wi + 1)
			}
			push(id, mark)
		}
		enc.numWords = wi + 1
	}
	push(e.sepID, 0)
	return enc
}

// pieces encodes s and strips the tokenizer's own special tokens.
func (e *onnxEngine) pieces(s string) []int {
	ids := e.tok.Encode(s)
	out := ids[:0:0]
	for _, id := range ids {
		if id == e.clsID || id == e.sepID || id == e.padID {
			continue
		}
		out = append(out, id)
	}
	return out
}

func (e *onnxEngine) runSequence(seq int, text string, words []Word, labels []string) ([]Span, error) {
	if len(words) == 0 {
		return []Span{}, nil
	}
	enc := e.encode(words, labels)
	if enc.numWords == 0 {
		return []Span{}, nil
	}
	maxWidth := e.params.MaxWidth
	numSpans := enc.numWords * maxWidth
	spanIdx := make([]int64, numSpans*2)
	spanMask := make([]bool, numSpans)
	for w := 0; w < enc.numWords; w++ {
		for k := 0; k < maxWidth; k++ {
			i := w*maxWidth + k
			spanIdx[i*2] = int64(w)
			spanIdx[i*2+1] = int64(w + k)
			spanMask[i] = w+k < enc.numWords
		}
	}
	seqLen := int64(len(enc.inputIDs))

	byName := map[string]func() (ort.Value, error){
		"input_ids":      func() (ort.Value, error) { return ort.NewTensor(ort.NewShape(1, seqLen), enc.inputIDs) },
		"attention_mask": func() (ort.Value, error) { return ort.NewTensor(ort.NewShape(1, seqLen), enc.attentionMask) },
		"words_mask":     func() (ort.Value, error) { return ort.NewTensor(ort.NewShape(1, seqLen), enc.wordsMask) },
		"text_lengths": func() (ort.Value, error) {
			return ort.NewTensor(ort.NewShape(1, 1), []int64{int64(enc.numWords)})
		},
		"span_idx": func() (ort.Value, error) {
			return ort.NewTensor(ort.NewShape(1, int64(numSpans), 2), spanIdx)
		},
		"span_mask": func() (ort.Value, error) {
			return ort.NewTensor(ort.NewShape(1, int64(numSpans)), spanMask)
		},
	}
	inputs := make([]ort.Value, len(e.inputNames))
	defer func() {
		for _, v := range inputs {
			if v != nil {
				v.Destroy()
			}
		}
	}()
	for i, name := range e.inputNames {
		mk, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unsupported model input %q", name)
		}
		v, err := mk()
		if err != nil {
			return nil, fmt.Errorf("creating input %s: %w", name, err)
		}
		inputs[i] = v
	}

	outputs := make([]ort.Value, len(e.outputNames))
	if err := e.session.Run(inputs, outputs); err != nil {
		return nil, fmt.Errorf("running session: %w", err)
	}
	defer func() {
		for _, v := range outputs {
			if v != nil {
				v.Destroy()
			}
		}
	}()

	var logits *ort.Tensor[float32]
	for i, v := range outputs {
		t, ok := v.(*ort.Tensor[float32])
		if !ok {
			continue
		}
		if logits == nil || e.outputNames[i] == "logits" {
			logits = t
		}
	}
	if logits == nil {
		return nil, fmt.Errorf("no float32 logits output")
	}
	shape := logits.GetShape()
	if len(shape) == 4 && shape[2] > 0 {
		maxWidth = int(shape[2])
	}
	data := append([]float32(nil), logits.GetData()...)
	return Decode(seq, text, words[:enc.numWords], labels, data, maxWidth, e.params), nil
}

func (e *onnxEngine) Close() error {
	if e.session != nil {
		e.session.Destroy()
		e.session = nil
	}
	if e.opts != nil {
		e.opts.Destroy()
		e.opts = nil
	}
	return nil
}
