package manager

import (
	"glinerd/internal/gliner"
	"glinerd/pkg/types"
)

// Project flattens raw into the wire result: sequences in index order, spans
// in emission order, the four span fields copied as is.
func Project(raw *gliner.RawOutput, text string) types.ExtractionResult {
	entities := []types.Entity{}
	if raw != nil {
		for _, seq := range raw.Spans {
			for _, s := range seq {
				entities = append(entities, types.Entity{
					Text:        s.Text(),
					Label:       s.Class(),
					Sequence:    s.SequenceIndex(),
					Probability: s.Probability(),
				})
			}
		}
	}
	return types.ExtractionResult{Text: text, Entities: entities, TotalEntities: len(entities)}
}
