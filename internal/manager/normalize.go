package manager

import "glinerd/internal/gliner"

// Normalize turns one request text and the label set into engine input.
// Failures are input errors carrying the cause message unchanged.
func Normalize(text string, labels []string) (gliner.ModelInput, error) {
	in, err := gliner.NewTextInput([]string{text}, labels)
	if err != nil {
		return gliner.ModelInput{}, ErrInput(err)
	}
	return in, nil
}
