package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(t *testing.T, cfg Config) *Extractor {
	t.Helper()
	e, err := NewExtractor(cfg, nil)
	require.NoError(t, err)
	return e
}

func TestExtract_RegistroANS_Labeled(t *testing.T) {
	e := newTestExtractor(t, Config{})
	got := e.Extract("1 - Registro ANS: 123456 2 - Número GUIA: 9988776")
	assert.Equal(t, "123456", got.RegistroANS)
}

func TestExtract_RegistroANS_BareFallback(t *testing.T) {
	e := newTestExtractor(t, Config{})

	got := e.Extract("cabeçalho qualquer ANS 123456 rodapé")
	assert.Equal(t, "123456", got.RegistroANS)

	// A short digit run near "ANS" is OCR noise, not a registry number.
	got = e.Extract("cabeçalho qualquer ANS 1234 rodapé")
	assert.Empty(t, got.RegistroANS)
}

func TestExtract_RegistroANS_MinDigitsConfigurable(t *testing.T) {
	e := newTestExtractor(t, Config{MinRegistroDigits: 5})
	got := e.Extract("ANS: 12345")
	assert.Equal(t, "12345", got.RegistroANS)

	e = newTestExtractor(t, Config{MinRegistroDigits: 7})
	got = e.Extract("ANS: 123456")
	assert.Empty(t, got.RegistroANS)
}

func TestExtract_NumeroGuia_StripsNonDigits(t *testing.T) {
	e := newTestExtractor(t, Config{})
	got := e.Extract("2 - Número GUIA: 123456789")
	assert.Equal(t, "123456789", got.NumeroGuia)

	got = e.Extract("GUIA n° 55.443.322")
	assert.Equal(t, "55443322", got.NumeroGuia)
}

func TestExtract_DataAutorizacao_NormalizesSeparators(t *testing.T) {
	e := newTestExtractor(t, Config{})

	tests := []struct {
		in   string
		want string
	}{
		{"4 - Data de Autorização: 05/03/2024", "05/03/2024"},
		{"Autorização: 05-03-2024", "05/03/2024"},
		{"Autorização: 05.03.2024", "05/03/2024"},
	}
	for _, tt := range tests {
		got := e.Extract(tt.in)
		assert.Equal(t, tt.want, got.DataAutorizacao, "input %q", tt.in)
	}
}

func TestExtract_Nome_RejectsSingleToken(t *testing.T) {
	e := newTestExtractor(t, Config{})

	got := e.Extract("Nome: Maria")
	assert.Empty(t, got.Nome)

	got = e.Extract("Nome: Maria Silva")
	assert.Equal(t, "Maria Silva", got.Nome)
}

func TestExtract_Nome_LabeledWithTrailingFields(t *testing.T) {
	e := newTestExtractor(t, Config{})
	got := e.Extract("10 - Nome: João Pereira dos Santos CPF 123.456.789-00")
	assert.Equal(t, "João Pereira dos Santos", got.Nome)
}

func TestExtract_FailedValidationTriesNextPattern(t *testing.T) {
	// The labeled pattern matches but its capture is too short; the
	// extractor must keep trying looser patterns instead of settling for
	// empty after the first syntactic match.
	e := newTestExtractor(t, Config{})
	got := e.Extract("1 - Registro ANS: 123 outras linhas ANS 654321 rodapé")
	assert.Equal(t, "654321", got.RegistroANS)
}

func TestExtract_Nome_SingleTokenEvenWhenLabeled(t *testing.T) {
	e := newTestExtractor(t, Config{})
	got := e.Extract("10 - Nome: Maria CPF 111.222.333-44")
	assert.Empty(t, got.Nome)
}

func TestExtract_ValorConsulta_KeepsThousandsSeparators(t *testing.T) {
	e := newTestExtractor(t, Config{})

	got := e.Extract("Valor: R$ 1.234,56")
	assert.Equal(t, "1.234,56", got.ValorConsulta)

	got = e.Extract("Valor da Consulta: 80,00")
	assert.Equal(t, "80,00", got.ValorConsulta)
}

func TestExtract_EmptyText(t *testing.T) {
	e := newTestExtractor(t, Config{})

	for _, in := range []string{"", "   ", "\n\n"} {
		got := e.Extract(in)
		assert.True(t, got.IsEmpty(), "input %q", in)
		assert.Len(t, got.Values(), 5)
	}
}

func TestExtract_MultilineInput(t *testing.T) {
	// Labels and values split across lines by OCR must still match after
	// normalization.
	e := newTestExtractor(t, Config{})
	text := "1 - Registro\nANS: 654321\n2 - Número\nGUIA:\n7654321\nAutorização:\n10/12/2023"
	got := e.Extract(text)
	assert.Equal(t, "654321", got.RegistroANS)
	assert.Equal(t, "7654321", got.NumeroGuia)
	assert.Equal(t, "10/12/2023", got.DataAutorizacao)
}

func TestExtract_IdempotentOnNormalizedText(t *testing.T) {
	e := newTestExtractor(t, Config{})
	original := "1 - Registro ANS: 123456\n2 - Número GUIA: 7654321\nAutorização: 05-03-2024\n10 - Nome: Maria Silva CPF 123.456.789-00\nValor: R$ 1.234,56"

	first := e.Extract(original)
	second := e.Extract(Normalize(original))
	assert.Equal(t, first, second)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a b c", Normalize("a\nb\n\n  c "))
	assert.Equal(t, "", Normalize("  \n \t "))
}

func TestNewExtractor_RejectsBadPatterns(t *testing.T) {
	_, err := NewExtractor(Config{
		Patterns: map[string][]string{keyRegistroANS: {`([`}},
	}, nil)
	assert.Error(t, err)

	_, err = NewExtractor(Config{
		Patterns: map[string][]string{keyRegistroANS: {`ANS \d+`}}, // no capture group
	}, nil)
	assert.Error(t, err)
}

func TestExtract_PatternOverride(t *testing.T) {
	e := newTestExtractor(t, Config{
		Patterns: map[string][]string{
			keyRegistroANS: {`(?i)Operadora[:\s]*(\d+)`},
		},
	})
	got := e.Extract("Operadora: 987654 ANS: 123456")
	assert.Equal(t, "987654", got.RegistroANS)
}
