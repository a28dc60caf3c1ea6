package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseContentStream_Tj(t *testing.T) {
	stream := []byte("BT\n/F1 12 Tf\n(1 - Registro ANS: 123456) Tj\nET\n")
	got := parseContentStream(stream)
	assert.Equal(t, "1 - Registro ANS: 123456", got)
}

func TestParseContentStream_TJArray(t *testing.T) {
	stream := []byte("[(Valor da ) -120 (Consulta: ) -80 (80,00)] TJ\n")
	got := parseContentStream(stream)
	assert.Equal(t, "Valor da Consulta: 80,00", got)
}

func TestParseContentStream_PositioningSeparates(t *testing.T) {
	stream := []byte("(10 - Nome) Tj\n1 0 0 1 120 700 Td\n(MARIA SILVA) Tj\n")
	got := parseContentStream(stream)
	assert.Equal(t, "10 - Nome MARIA SILVA", got)
}

func TestParseContentStream_NextLineShow(t *testing.T) {
	stream := []byte("(linha um) Tj\n(linha dois) '\n")
	got := parseContentStream(stream)
	// cleanText collapses the line break into a single separator
	assert.Equal(t, "linha um linha dois", got)
}

func TestParseContentStream_TStar(t *testing.T) {
	stream := []byte("(um) Tj\nT*\n(dois) Tj\n")
	got := parseContentStream(stream)
	assert.Equal(t, "um dois", got)
}

func TestParseContentStream_IgnoresNonText(t *testing.T) {
	stream := []byte("q\n0.5 w\n100 100 m\n200 200 l\nS\nQ\n")
	assert.Equal(t, "", parseContentStream(stream))
}

func TestDecodeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "texto simples", "texto simples"},
		{"escaped parens", `Valor \(consulta\)`, "Valor (consulta)"},
		{"escaped backslash", `a\\b`, `a\b`},
		{"newline escape", `a\nb`, "a\nb"},
		{"tab escape", `a\tb`, "a\tb"},
		{"octal three digits", `\101\102`, "AB"},
		{"octal two digits", `\75`, "="},
		{"octal one digit", `\0x`, "\x00x"},
		{"unknown escape passes through", `a\qb`, "aqb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeString([]byte(tt.in)))
		})
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", cleanText("  a \t b\n\nc  "))
	assert.Equal(t, "abc", cleanText("a\x00b\x01c"))
	assert.Equal(t, "", cleanText("   "))
}
