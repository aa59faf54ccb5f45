package gliner

// Word is one pre-split unit of an input text with its byte offsets.
type Word struct {
	Text  string
	Start int
	End   int
}

// ModelInput is the engine's structured input: texts, the labels to
// recognize and the word split of every text. Build it with NewTextInput.
type ModelInput struct {
	Texts  []string
	Labels []string
	Words  [][]Word
}

// Span is a single detected entity. It is immutable once produced.
type Span struct {
	text     string
	class    string
	sequence int
	start    int
	end      int
	prob     float32
}

// NewSpan constructs a span; start and end are byte offsets into the
// sequence's text.
func NewSpan(text, class string, sequence, start, end int, prob float32) Span {
	return Span{text: text, class: class, sequence: sequence, start: start, end: end, prob: prob}
}

func (s Span) Text() string         { return s.text }
func (s Span) Class() string        { return s.class }
func (s Span) SequenceIndex() int   { return s.sequence }
func (s Span) Start() int           { return s.start }
func (s Span) End() int             { return s.end }
func (s Span) Probability() float32 { return s.prob }

// RawOutput holds spans per input sequence, in emission order.
type RawOutput struct {
	Spans [][]Span
}

// ModelFiles locates the two artifacts an engine is built from.
type ModelFiles struct {
	Tokenizer string
	Model     string
}
