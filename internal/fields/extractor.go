package fields

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Config tunes the extractor. The minimum digit lengths gate the looser
// fallback patterns; source documents are inconsistent enough that these
// are deliberately tunable rather than fixed.
type Config struct {
	MinRegistroDigits int // default 6
	MinGuiaDigits     int // default 6

	// Patterns overrides the built-in pattern lists per field key.
	// Usually populated from a pattern file; see LoadPatternFile.
	Patterns map[string][]string
}

// Extractor applies the ordered rule battery to normalized text.
type Extractor struct {
	registro ruleSet
	guia     ruleSet
	data     ruleSet
	nome     ruleSet
	valor    ruleSet
	logger   *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) (*Extractor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinRegistroDigits <= 0 {
		cfg.MinRegistroDigits = 6
	}
	if cfg.MinGuiaDigits <= 0 {
		cfg.MinGuiaDigits = 6
	}

	compile := func(key string, v validator) (ruleSet, error) {
		patterns := defaultPatterns[key]
		if override, ok := cfg.Patterns[key]; ok && len(override) > 0 {
			patterns = override
		}
		rs := make(ruleSet, 0, len(patterns))
		for _, p := range patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("field %s: compile %q: %w", key, p, err)
			}
			if re.NumSubexp() < 1 {
				return nil, fmt.Errorf("field %s: pattern %q has no capture group", key, p)
			}
			rs = append(rs, rule{re: re, validate: v})
		}
		return rs, nil
	}

	e := &Extractor{logger: logger}
	var err error
	if e.registro, err = compile(keyRegistroANS, minDigits(cfg.MinRegistroDigits)); err != nil {
		return nil, err
	}
	if e.guia, err = compile(keyNumeroGuia, minDigits(cfg.MinGuiaDigits)); err != nil {
		return nil, err
	}
	if e.data, err = compile(keyDataAutorizacao, validDate); err != nil {
		return nil, err
	}
	if e.nome, err = compile(keyNome, validName); err != nil {
		return nil, err
	}
	if e.valor, err = compile(keyValorConsulta, validValor); err != nil {
		return nil, err
	}
	return e, nil
}

// Normalize flattens a text blob for pattern matching: newlines become
// spaces and whitespace runs collapse to single spaces. OCR and multi-page
// concatenation otherwise split labels from their values across lines.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(text, " "))
}

// Extract returns the five-field record for text. Unmatched fields are
// empty strings; empty input yields an all-empty record, not an error.
func (e *Extractor) Extract(text string) GuideFields {
	var out GuideFields
	if strings.TrimSpace(text) == "" {
		return out
	}
	text = Normalize(text)

	out.RegistroANS = e.registro.apply(text)
	out.NumeroGuia = e.guia.apply(text)
	out.DataAutorizacao = e.data.apply(text)
	out.Nome = e.nome.apply(text)
	out.ValorConsulta = e.valor.apply(text)

	if out.IsEmpty() {
		e.logger.Debug("no fields matched", "text_len", len(text))
	}
	return out
}
