package gliner

import (
	"cmp"
	"math"
	"slices"
)

// candidate is a scored span in word coordinates.
type candidate struct {
	first, last int // inclusive word indices
	label       int
	prob        float32
}

// Decode turns span logits for one sequence into spans.
//
// logits is laid out as [numWords, maxWidth, numLabels] (batch dimension
// removed). Spans scoring at or above the threshold are selected greedily by
// descending probability, rejecting conflicts according to FlatNER and
// MultiLabel, and returned ordered by position.
func Decode(sequence int, text string, words []Word, labels []string, logits []float32, maxWidth int, p Params) []Span {
	numLabels := len(labels)
	if numLabels == 0 || maxWidth <= 0 || len(words) == 0 {
		return nil
	}
	var cands []candidate
	for w := range words {
		for k := 0; k < maxWidth; k++ {
			last := w + k
			if last >= len(words) {
				break
			}
			base := (w*maxWidth + k) * numLabels
			for l := 0; l < numLabels; l++ {
				idx := base + l
				if idx >= len(logits) {
					break
				}
				prob := sigmoid(logits[idx])
				if prob >= p.Threshold {
					cands = append(cands, candidate{first: w, last: last, label: l, prob: prob})
				}
			}
		}
	}
	if len(cands) == 0 {
		return nil
	}

	slices.SortStableFunc(cands, func(a, b candidate) int { return cmp.Compare(b.prob, a.prob) })
	kept := make([]candidate, 0, len(cands))
	for _, c := range cands {
		ok := true
		for _, k := range kept {
			if conflicts(c, k, p.FlatNER, p.MultiLabel) {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, c)
		}
	}
	slices.SortStableFunc(kept, func(a, b candidate) int {
		if a.first != b.first {
			return cmp.Compare(a.first, b.first)
		}
		return cmp.Compare(a.last, b.last)
	})

	out := make([]Span, 0, len(kept))
	for _, c := range kept {
		start, end := words[c.first].Start, words[c.last].End
		out = append(out, NewSpan(text[start:end], labels[c.label], sequence, start, end, c.prob))
	}
	return out
}

func conflicts(a, b candidate, flat, multi bool) bool {
	if a.first == b.first && a.last == b.last {
		return !multi
	}
	if a.last < b.first || b.last < a.first {
		return false
	}
	if flat {
		return true
	}
	nested := (a.first <= b.first && b.last <= a.last) || (b.first <= a.first && a.last <= b.last)
	return !nested
}

func sigmoid(x float32) float32 {
	return float32(1 / (1 + math.Exp(-float64(x))))
}
