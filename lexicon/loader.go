package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cours-d-arabe/nahw"
)

// Fields of a data line, after the form.
const maxFields = 7

// Load reads a lexicon file. Files ending in .yaml or .yml are read as YAML,
// anything else in the pipe-separated format.
func Load(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadYAML(f)
	default:
		return ReadPipe(f)
	}
}

// ReadPipe parses the pipe-separated format:
//
//	form|pos|pattern|root|lemma|syntax_role|source_verb
//
// Lines starting with "!" are comments. Trailing fields may be left out and
// an empty field means the attribute is not reported. A form may appear on
// several lines; earlier lines rank first.
func ReadPipe(r io.Reader) (*Lexicon, error) {
	l := New()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 2 || len(parts) > maxFields {
			return nil, fmt.Errorf("lexicon line %d: want 2 to %d fields, got %d", lineNo, maxFields, len(parts))
		}
		form := strings.TrimSpace(parts[0])
		if form == "" {
			return nil, fmt.Errorf("lexicon line %d: empty form", lineNo)
		}
		for len(parts) < maxFields {
			parts = append(parts, "")
		}
		l.Add(form, nahw.Record{
			POS:        field(parts[1]),
			Pattern:    field(parts[2]),
			Root:       field(parts[3]),
			Lemma:      field(parts[4]),
			SyntaxRole: field(parts[5]),
			SourceVerb: field(parts[6]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return l, nil
}

func field(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return nahw.Str(s)
}

type yamlFile struct {
	Entries []yamlEntry `yaml:"entries"`
}

type yamlEntry struct {
	Form     string        `yaml:"form"`
	Analyses []nahw.Record `yaml:"analyses"`
}

// ReadYAML parses the YAML format:
//
//	entries:
//	  - form: الكاتب
//	    analyses:
//	      - {pos: NOUN, pattern: فاعل, root: ك.ت.ب}
//
// Keys left out are not reported; an explicit empty string is.
func ReadYAML(r io.Reader) (*Lexicon, error) {
	var doc yamlFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}
	l := New()
	for i, e := range doc.Entries {
		if strings.TrimSpace(e.Form) == "" {
			return nil, fmt.Errorf("lexicon entry %d: empty form", i)
		}
		for _, rec := range e.Analyses {
			l.Add(strings.TrimSpace(e.Form), rec)
		}
	}
	return l, nil
}
