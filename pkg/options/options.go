package options

// Variant selects what runs after the fixed-dictionary pass.
type Variant int

const (
	// VariantMode rewrites content words through the mode lemma tables.
	VariantMode Variant = iota
	// VariantImprove swaps nouns and adjectives for their longest synonym and
	// fixes determiner agreement.
	VariantImprove
)

func (v Variant) String() string {
	if v == VariantImprove {
		return "improve"
	}
	return "mode"
}

// ParseVariant maps "mode" or "improve" to a Variant.
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "", "mode":
		return VariantMode, true
	case "improve":
		return VariantImprove, true
	}
	return VariantMode, false
}

var DefaultOptions = PipelineOptions{
	PreserveLines:       true,
	ApplyAgreement:      false,
	FixedDictionaryPass: true,
	ModeTable:           true,
	Variant:             VariantMode,
	Normalize:           true,
	StripAccents:        false,
}

type PipelineOptions struct {
	PreserveLines       bool // process line by line; off joins the text into one line
	ApplyAgreement      bool // fix determiner gender after noun replacements
	FixedDictionaryPass bool // fixed dictionary in formal modes
	ModeTable           bool // mode lemma tables (VariantMode only)
	Variant             Variant
	Normalize           bool // NFC and interior whitespace collapse
	StripAccents        bool // drop combining marks before annotation
}

type Options interface {
	Apply(options *PipelineOptions)
}

type FuncConfig struct {
	ops func(options *PipelineOptions)
}

func (w FuncConfig) Apply(conf *PipelineOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *PipelineOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

// Build applies opts over DefaultOptions.
func Build(opts ...Options) PipelineOptions {
	o := DefaultOptions
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(&o)
		}
	}
	return o
}

func WithPreserveLines(on bool) Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.PreserveLines = on
	})
}

func WithAgreement() Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.ApplyAgreement = true
	})
}

func WithoutFixedDictionary() Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.FixedDictionaryPass = false
	})
}

func WithoutModeTable() Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.ModeTable = false
	})
}

func WithVariant(v Variant) Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.Variant = v
	})
}

func WithNormalize(on bool) Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.Normalize = on
	})
}

func WithStripAccents() Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.StripAccents = true
	})
}

// Presets

// WithImproveVariant replaces the mode tables with synonym improvement and
// turns on determiner agreement.
func WithImproveVariant() Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.Variant = VariantImprove
		options.ModeTable = false
		options.ApplyAgreement = true
	})
}

// WithSpellingOnly keeps only the spelling corrector and the final smoothing.
func WithSpellingOnly() Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.Variant = VariantMode
		options.FixedDictionaryPass = false
		options.ModeTable = false
		options.ApplyAgreement = false
	})
}

// WithWholeText treats the input as a single line; newlines become spaces.
func WithWholeText() Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.PreserveLines = false
	})
}
