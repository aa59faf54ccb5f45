package gliner

import "errors"

// Params controls span decoding and the native session.
type Params struct {
	// Threshold is the minimum probability for a span to be emitted.
	Threshold float32
	// MaxWidth is the maximum span width in words.
	MaxWidth int
	// MaxLength caps the encoded sequence length in tokens.
	MaxLength int
	// FlatNER forbids any overlap between emitted spans.
	FlatNER bool
	// MultiLabel allows the same span to carry several labels.
	MultiLabel bool
	// Threads sets intra-op threads for the native session (0 = runtime default).
	Threads int
}

// DefaultParams mirrors the GLiNER reference defaults.
func DefaultParams() Params {
	return Params{
		Threshold: 0.5,
		MaxWidth:  12,
		MaxLength: 512,
		FlatNER:   true,
	}
}

// Option adjusts Params.
type Option func(*Params) error

// NewParams applies opts over DefaultParams.
func NewParams(opts ...Option) (Params, error) {
	p := DefaultParams()
	for _, opt := range opts {
		if err := opt(&p); err != nil {
			return Params{}, err
		}
	}
	return p, nil
}

// WithThreshold sets the score threshold.
func WithThreshold(threshold float32) Option {
	return func(p *Params) error {
		if threshold < 0 || threshold > 1 {
			return errors.New("threshold must be between 0 and 1")
		}
		p.Threshold = threshold
		return nil
	}
}

// WithMaxWidth sets the maximum span width in words.
func WithMaxWidth(maxWidth int) Option {
	return func(p *Params) error {
		if maxWidth <= 0 {
			return errors.New("maxWidth must be positive")
		}
		p.MaxWidth = maxWidth
		return nil
	}
}

// WithMaxLength sets the maximum sequence length in tokens.
func WithMaxLength(maxLength int) Option {
	return func(p *Params) error {
		if maxLength < 8 {
			return errors.New("maxLength must be at least 8")
		}
		p.MaxLength = maxLength
		return nil
	}
}

// WithFlatNER toggles flat (non-overlapping) decoding.
func WithFlatNER(flat bool) Option {
	return func(p *Params) error {
		p.FlatNER = flat
		return nil
	}
}

// WithMultiLabel toggles multi-label decoding.
func WithMultiLabel(multi bool) Option {
	return func(p *Params) error {
		p.MultiLabel = multi
		return nil
	}
}

// WithThreads sets the native session thread count.
func WithThreads(n int) Option {
	return func(p *Params) error {
		if n < 0 {
			return errors.New("threads must not be negative")
		}
		p.Threads = n
		return nil
	}
}
