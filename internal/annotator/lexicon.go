package annotator

import (
	"embed"
	"fmt"
	"strings"

	"formalizer/internal/wordfile"
)

//go:embed data/lexicon_es.tsv
var dataFS embed.FS

// Entry is the analysis of one word form.
type Entry struct {
	Lemma  string
	POS    POS
	Gender Gender
	Tense  bool
}

// Lexicon maps lowercase word forms to their analysis.
type Lexicon struct {
	forms map[string]Entry
}

// NewLexicon returns an empty lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{forms: make(map[string]Entry)}
}

// LoadLexicon reads a tab-separated lexicon file:
//
//	form	lemma	UPOS	feats
//
// where feats is a CoNLL-U feature list such as "Gender=Fem|Tense=Pres" or "_".
func LoadLexicon(path string) (*Lexicon, error) {
	lex := NewLexicon()
	if err := wordfile.Read(path, lex.parseLine); err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	return lex, nil
}

// DefaultLexicon returns the bundled Spanish seed lexicon.
func DefaultLexicon() *Lexicon {
	data, err := dataFS.ReadFile("data/lexicon_es.tsv")
	if err != nil {
		panic(fmt.Sprintf("annotator: embedded lexicon: %v", err))
	}
	lex := NewLexicon()
	if err := wordfile.Scan(data, lex.parseLine); err != nil {
		panic(fmt.Sprintf("annotator: embedded lexicon: %v", err))
	}
	return lex
}

func (l *Lexicon) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return fmt.Errorf("lexicon line %q: want form, lemma and tag", line)
	}
	e := Entry{Lemma: strings.ToLower(fields[1]), POS: ParsePOS(fields[2])}
	if len(fields) > 3 {
		e.Gender, e.Tense = parseFeats(fields[3])
	}
	l.Add(fields[0], e)
	return nil
}

func parseFeats(feats string) (Gender, bool) {
	var g Gender
	var tense bool
	for _, kv := range strings.Split(feats, "|") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		switch k {
		case "Gender":
			switch v {
			case "Masc":
				g = Masc
			case "Fem":
				g = Fem
			}
		case "Tense":
			tense = v != ""
		}
	}
	return g, tense
}

// Add registers or replaces the analysis of form.
func (l *Lexicon) Add(form string, e Entry) {
	l.forms[strings.ToLower(form)] = e
}

// Lookup returns the analysis of the lowercase form of w.
func (l *Lexicon) Lookup(w string) (Entry, bool) {
	e, ok := l.forms[strings.ToLower(w)]
	return e, ok
}

// Len returns the number of forms.
func (l *Lexicon) Len() int { return len(l.forms) }
