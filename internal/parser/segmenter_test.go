package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment_NoSeparatorsSingleSection(t *testing.T) {
	text := "Uma ideia de vídeo sobre bastidores da produção de conteúdo"

	sections := Segment(text)

	assert.Len(t, sections, 1)
	assert.Equal(t, text, sections[0])
}

func TestSegment_BelowLengthFloor(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\n  "},
		{"short noise", "ok, anotado"},
		{"exactly at floor", "12345678901234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Segment(tt.text))
		})
	}
}

func TestSegment_NumberedHeaders(t *testing.T) {
	text := "IDEIA 1:\nPrimeira ideia com conteúdo suficiente para passar\n" +
		"ITEM 2:\nSegunda ideia também com conteúdo suficiente aqui\n" +
		"OS 3:\nTerceira ideia igualmente com conteúdo suficiente"

	sections := Segment(text)

	assert.Len(t, sections, 3)
	assert.Contains(t, sections[0], "Primeira ideia")
	assert.Contains(t, sections[1], "Segunda ideia")
	assert.Contains(t, sections[2], "Terceira ideia")
}

func TestSegment_HeadersAreCaseInsensitive(t *testing.T) {
	text := "ideia 1:\nPrimeira ideia com conteúdo suficiente para passar\n" +
		"Item 2:\nSegunda ideia também com conteúdo suficiente aqui"

	assert.Len(t, Segment(text), 2)
}

func TestSegment_DashDivider(t *testing.T) {
	text := "Primeira ideia com conteúdo suficiente para passar\n---\nSegunda ideia também com conteúdo suficiente aqui"

	sections := Segment(text)

	assert.Len(t, sections, 2)
}

func TestSegment_TripleNewline(t *testing.T) {
	text := "Primeira ideia com conteúdo suficiente para passar\n\n\nSegunda ideia também com conteúdo suficiente aqui"

	sections := Segment(text)

	assert.Len(t, sections, 2)
}

func TestSegment_DiscardsShortSections(t *testing.T) {
	text := "Primeira ideia com conteúdo suficiente para passar\n---\ncurta\n---\nTerceira ideia igualmente com conteúdo suficiente"

	sections := Segment(text)

	assert.Len(t, sections, 2)
	assert.Contains(t, sections[0], "Primeira")
	assert.Contains(t, sections[1], "Terceira")
}

func TestSegment_OrderFollowsSource(t *testing.T) {
	text := "IDEIA 2:\nEsta veio primeiro no texto apesar do número dois\nIDEIA 1:\nEsta veio depois no texto apesar do número um"

	sections := Segment(text)

	assert.Len(t, sections, 2)
	assert.Contains(t, sections[0], "primeiro no texto")
	assert.Contains(t, sections[1], "depois no texto")
}
