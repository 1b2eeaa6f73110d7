package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFields_TitleWindow(t *testing.T) {
	tests := []struct {
		name     string
		section  string
		expected string
	}{
		{
			name:     "label stripped",
			section:  "Título: Como crescer no Instagram\nConteúdo sobre estratégias de crescimento orgânico",
			expected: "Como crescer no Instagram",
		},
		{
			name:     "numeric bullet stripped",
			section:  "1. Bastidores da gravação\nMostrar o processo de produção de um vídeo do início ao fim",
			expected: "Bastidores da gravação",
		},
		{
			name:     "english label stripped",
			section:  "Title: Client onboarding series\nA short series walking new clients through the process",
			expected: "Client onboarding series",
		},
		{
			name:     "skips too-short first line",
			section:  "Intro\nEste é o título que serve\nE aqui vem uma descrição longa o bastante para contar",
			expected: "Este é o título que serve",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ExtractFields(tt.section)
			assert.Equal(t, tt.expected, fields.Titulo)
		})
	}
}

func TestExtractFields_TitleFallsBackToFirstLine(t *testing.T) {
	// No line lands inside the (10, 100) window: fall back to the raw first line.
	section := "curto\noutra\ne nada aqui passa do limite? passa sim porque esta linha é bem longa e ultrapassa os cem caracteres facilmente quando escrita desse jeito"

	fields := ExtractFields(section)

	assert.Equal(t, "curto", fields.Titulo)
}

func TestExtractFields_DescriptionFirstLongLineAfterTitle(t *testing.T) {
	section := "Título: Rotina matinal real\ncurta\nUma descrição com mais de vinte caracteres sobre a rotina"

	fields := ExtractFields(section)

	assert.Equal(t, "Rotina matinal real", fields.Titulo)
	assert.Equal(t, "Uma descrição com mais de vinte caracteres sobre a rotina", fields.Descricao)
}

func TestExtractFields_DescriptionJoinsRemainder(t *testing.T) {
	section := "Título: Rotina matinal real\numas notas\nsoltas aqui"

	fields := ExtractFields(section)

	assert.Equal(t, "umas notas soltas aqui", fields.Descricao)
}

func TestExtractFields_DescriptionLabelStripped(t *testing.T) {
	tests := []struct {
		name     string
		section  string
		expected string
	}{
		{
			name:     "portuguese label",
			section:  "Título: Como fazer X\nDescrição: tutorial urgente sobre X e mais contexto",
			expected: "tutorial urgente sobre X e mais contexto",
		},
		{
			name:     "unaccented label",
			section:  "Título: Como fazer X\nDescricao: tutorial urgente sobre X e mais contexto",
			expected: "tutorial urgente sobre X e mais contexto",
		},
		{
			name:     "english label",
			section:  "Title: Client onboarding series\nDescription: a walkthrough of the first month with us",
			expected: "a walkthrough of the first month with us",
		},
		{
			name:     "no label kept as is",
			section:  "Título: Como fazer X\nConteúdo sobre estratégias de crescimento orgânico",
			expected: "Conteúdo sobre estratégias de crescimento orgânico",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ExtractFields(tt.section)
			assert.Equal(t, tt.expected, fields.Descricao)
		})
	}
}

func TestExtractFields_DescriptionFallback(t *testing.T) {
	section := "Uma linha única que serve de título e nada mais"

	fields := ExtractFields(section)

	assert.Equal(t, FallbackDescription, fields.Descricao)
}

func TestExtractFields_LabeledFields(t *testing.T) {
	section := `Título: Série de depoimentos
Descrição: clientes contando como foi a experiência com a marca
Gancho: você não vai acreditar no antes e depois
CTA: agende sua avaliação
Roteiro: abrir com o depoimento mais forte
Legenda: resultados reais, sem filtro
Prazo: 2024-07-15`

	fields := ExtractFields(section)

	assert.Equal(t, "clientes contando como foi a experiência com a marca", fields.Descricao)
	assert.Equal(t, "você não vai acreditar no antes e depois", fields.Gancho)
	assert.Equal(t, "agende sua avaliação", fields.CTA)
	assert.Equal(t, "abrir com o depoimento mais forte", fields.Roteiro)
	assert.Equal(t, "resultados reais, sem filtro", fields.Legenda)
	assert.Equal(t, "2024-07-15", fields.Prazo)
}

func TestExtractFields_MissingLabeledFieldsStayEmpty(t *testing.T) {
	section := "Título: Sem campos extras\nApenas uma descrição comprida o suficiente para valer"

	fields := ExtractFields(section)

	assert.Empty(t, fields.Gancho)
	assert.Empty(t, fields.CTA)
	assert.Empty(t, fields.Prazo)
	assert.Empty(t, fields.LinksMidia)
}

func TestExtractFields_MediaLinksAllowList(t *testing.T) {
	section := `Título: Material de apoio da campanha
Descrição: referências e brutos para a edição desta semana
https://drive.google.com/file/d/abc123
https://www.dropbox.com/s/xyz789
https://wetransfer.com/downloads/def456
https://example.com/nao-entra
https://onedrive.live.com/redir?resid=123`

	fields := ExtractFields(section)

	assert.Equal(t, []string{
		"https://drive.google.com/file/d/abc123",
		"https://www.dropbox.com/s/xyz789",
		"https://wetransfer.com/downloads/def456",
		"https://onedrive.live.com/redir?resid=123",
	}, fields.LinksMidia)
}

func TestExtractFields_DuplicateLinksDeduped(t *testing.T) {
	section := "Título: Brutos da captação de terça\nDescrição longa o suficiente para o campo valer aqui\nhttps://drive.google.com/file/d/abc\nhttps://drive.google.com/file/d/abc"

	fields := ExtractFields(section)

	assert.Len(t, fields.LinksMidia, 1)
}

func TestExtractFields_NeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{
		"",
		":::::",
		"\n\n\n\n",
		"https://",
		"Título:",
	}

	for _, input := range inputs {
		assert.NotPanics(t, func() { ExtractFields(input) })
	}
}
