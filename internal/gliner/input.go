package gliner

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrEmptyLabels is returned when no labels are supplied.
var ErrEmptyLabels = errors.New("label set is empty: at least one label is required")

// wordPattern matches runs of letters/digits (joined by - or _) or any single
// non-space character, so punctuation becomes its own word.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+(?:[-_][\p{L}\p{N}_]+)*|\S`)

// NewTextInput validates texts and labels and splits every text into words.
func NewTextInput(texts []string, labels []string) (ModelInput, error) {
	if len(labels) == 0 {
		return ModelInput{}, ErrEmptyLabels
	}
	for i, l := range labels {
		if strings.TrimSpace(l) == "" {
			return ModelInput{}, fmt.Errorf("label %d is empty", i)
		}
		if !utf8.ValidString(l) {
			return ModelInput{}, fmt.Errorf("label %d is not valid UTF-8", i)
		}
	}
	in := ModelInput{
		Texts:  append([]string(nil), texts...),
		Labels: append([]string(nil), labels...),
		Words:  make([][]Word, len(texts)),
	}
	for i, t := range texts {
		if !utf8.ValidString(t) {
			return ModelInput{}, fmt.Errorf("text %d is not valid UTF-8", i)
		}
		in.Words[i] = SplitWords(t)
	}
	return in, nil
}

// SplitWords splits text into words with byte offsets.
func SplitWords(text string) []Word {
	locs := wordPattern.FindAllStringIndex(text, -1)
	words := make([]Word, 0, len(locs))
	for _, loc := range locs {
		words = append(words, Word{Text: text[loc[0]:loc[1]], Start: loc[0], End: loc[1]})
	}
	return words
}
