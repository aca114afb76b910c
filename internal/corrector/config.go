package corrector

// CorrectorConfig tunes the spelling corrector.
type CorrectorConfig struct {
	// MaxEditDistance is the largest Levenshtein distance accepted for a
	// correction.
	MaxEditDistance int
	// UseIndex searches a BK-tree instead of scanning the whole vocabulary.
	// Results are identical.
	UseIndex bool
	// PreserveCase re-cases a correction to the Title or UPPER shape of the
	// original token. When false the lowercase vocabulary form is emitted.
	PreserveCase bool
	// SkipProperNouns leaves capitalised words alone unless they open the line.
	SkipProperNouns bool
}

// DefaultConfig returns the configuration used by the binaries.
func DefaultConfig() CorrectorConfig {
	return CorrectorConfig{
		MaxEditDistance: 2,
		UseIndex:        true,
		PreserveCase:    true,
		SkipProperNouns: true,
	}
}

// Pair is the result for one token: the original surface and the form the
// corrector emits for it.
type Pair struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
}

// Changed reports whether the corrector rewrote the token.
func (p Pair) Changed() bool { return p.Original != p.Corrected }
