// Package pipeline runs the rewriting stages over a text, line by line:
// spelling correction, the fixed dictionary, mode tables or synonym
// improvement, determiner agreement, then duplicate smoothing and
// contractions.
//
// A line's output depends only on the line, the mode and the current cache
// contents. Lines are independent.
package pipeline

import (
	"errors"
	"strings"

	"formalizer/internal/agreement"
	"formalizer/internal/annotator"
	"formalizer/internal/corrector"
	"formalizer/internal/substitute"
	"formalizer/internal/vocab"
	"formalizer/pkg/options"
)

// Stage names a pipeline step in a Change.
type Stage string

const (
	StageSpelling    Stage = "spelling"
	StageFixed       Stage = "fixed"
	StageMode        Stage = "mode"
	StageImprove     Stage = "improve"
	StageAgreement   Stage = "agreement"
	StageSmoothing   Stage = "smoothing"
	StageContraction Stage = "contraction"
)

// Change records one rewrite. Index is the token position in the token
// stream the stage worked on, which after re-annotation may differ from the
// position in the input line. Line is zero based.
type Change struct {
	Line   int    `json:"line"`
	Index  int    `json:"index"`
	Stage  Stage  `json:"stage"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// Result is the outcome of Process.
type Result struct {
	Original string          `json:"original"`
	Output   string          `json:"output"`
	Mode     substitute.Mode `json:"mode"`
	Changes  []Change        `json:"changes"`
}

// Deps are the collaborators a Pipeline runs. Corrector is required; the
// rest fall back to the bundled defaults.
type Deps struct {
	Annotator annotator.Annotator
	Corrector *corrector.SpellCorrector
	Rules     *substitute.Rules
	Synonyms  *substitute.Synonyms
	// Vocab filters synonym candidates. Defaults to the corrector's vocabulary.
	Vocab *vocab.Set
}

// Pipeline is safe for concurrent use when its collaborators are.
type Pipeline struct {
	ann      annotator.Annotator
	spell    *corrector.SpellCorrector
	rules    *substitute.Rules
	synonyms *substitute.Synonyms
	known    *vocab.Set
	opts     options.PipelineOptions
}

// New assembles a pipeline.
func New(d Deps, opts ...options.Options) (*Pipeline, error) {
	if d.Corrector == nil {
		return nil, errors.New("pipeline: corrector is required")
	}
	p := &Pipeline{
		ann:      d.Annotator,
		spell:    d.Corrector,
		rules:    d.Rules,
		synonyms: d.Synonyms,
		known:    d.Vocab,
		opts:     options.Build(opts...),
	}
	if p.ann == nil {
		p.ann = annotator.New(nil)
	}
	if p.rules == nil {
		p.rules = substitute.DefaultRules()
	}
	if p.synonyms == nil {
		p.synonyms = substitute.DefaultSynonyms()
	}
	if p.known == nil {
		p.known = d.Corrector.Vocabulary()
	}
	return p, nil
}

// Options returns the options the pipeline was built with.
func (p *Pipeline) Options() options.PipelineOptions { return p.opts }

// Process rewrites text towards mode. The output has as many lines as the
// input unless PreserveLines is off, in which case newlines become spaces
// and the text is handled as one line.
func (p *Pipeline) Process(text string, mode substitute.Mode) Result {
	res := Result{Original: text, Mode: mode}
	if !p.opts.PreserveLines {
		unit := strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", " "), "\n", " ")
		res.Output = p.line(0, unit, mode, &res.Changes)
		return res
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = p.line(i, l, mode, &res.Changes)
	}
	res.Output = strings.Join(lines, "\n")
	return res
}

// line rewrites a single line. Blank lines come back verbatim; leading
// indentation and a trailing carriage return are kept.
func (p *Pipeline) line(n int, raw string, mode substitute.Mode, changes *[]Change) string {
	body, cr := raw, ""
	if strings.HasSuffix(body, "\r") {
		body, cr = body[:len(body)-1], "\r"
	}
	if strings.TrimSpace(body) == "" {
		return raw
	}
	indent, rest := splitIndent(body)
	if p.opts.Normalize {
		rest = normalize(rest)
	}
	if p.opts.StripAccents {
		rest = StripAccents(rest)
	}

	rec := func(stage Stage) func(i int, before, after string) {
		return func(i int, before, after string) {
			*changes = append(*changes, Change{Line: n, Index: i, Stage: stage, Before: before, After: after})
		}
	}
	diff := func(stage Stage, before, after []string) {
		r := rec(stage)
		for i := range before {
			if before[i] != after[i] {
				r(i, before[i], after[i])
			}
		}
	}

	toks := p.ann.Annotate(rest)
	if len(toks) == 0 {
		return raw
	}

	pairs := p.spell.Correct(toks)
	cur := make([]string, len(pairs))
	for i, pr := range pairs {
		cur[i] = pr.Corrected
	}
	diff(StageSpelling, annotator.Texts(toks), cur)

	if p.opts.FixedDictionaryPass && mode.IsFormal() {
		next := p.rules.FixedPass(toks, cur)
		diff(StageFixed, cur, next)
		p.agree(toks, cur, next, rec(StageAgreement))
		cur = next
	}
	text := annotator.Join(toks, cur)

	switch {
	case p.opts.Variant == options.VariantImprove:
		toks = p.ann.Annotate(text)
		base := annotator.Texts(toks)
		next := p.synonyms.ImprovePass(toks, p.known.Contains)
		diff(StageImprove, base, next)
		p.agree(toks, base, next, rec(StageAgreement))
		text = annotator.Join(toks, next)
	case p.opts.ModeTable:
		toks = p.ann.Annotate(text)
		base := annotator.Texts(toks)
		next := p.rules.ModePass(toks, mode)
		diff(StageMode, base, next)
		p.agree(toks, base, next, rec(StageAgreement))
		text = annotator.Join(toks, next)
	}

	ps := pieces(p.ann.Annotate(text))
	ps = smooth(ps, rec(StageSmoothing))
	ps = contract(ps, rec(StageContraction))
	return indent + joinPieces(ps) + cr
}

func (p *Pipeline) agree(toks []annotator.Token, before, after []string, record func(int, string, string)) {
	if !p.opts.ApplyAgreement {
		return
	}
	prev := make([]string, len(after))
	copy(prev, after)
	for _, i := range agreement.Adjust(p.ann, toks, before, after) {
		record(i, prev[i], after[i])
	}
}
