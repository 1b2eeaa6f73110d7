package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conteudoflow/os-tracker/internal/domain/entity"
)

func newTestProvider() *HeuristicProvider {
	channels := ChannelConfig{
		PerBrand: map[string][]string{
			"clinica": {"instagram", "tiktok"},
		},
		Default: []string{"instagram"},
	}
	return NewHeuristicProvider(DefaultClassifierConfig(), channels, zap.NewNop())
}

func TestHeuristicProvider_SingleIdeaScenario(t *testing.T) {
	provider := newTestProvider()

	items, metadata, err := provider.Parse(context.Background(),
		"IDEIA 1:\nTítulo: Como fazer X\nDescrição: tutorial urgente sobre X", "clinica")

	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "Como fazer X", item.Titulo)
	assert.Equal(t, "tutorial urgente sobre X", item.Descricao)
	assert.Equal(t, entity.TipoEducativo, item.Tipo)
	assert.Equal(t, entity.PrioridadeAlta, item.Prioridade)
	assert.Equal(t, entity.ObjetivoAtracao, item.Objetivo)
	assert.Equal(t, "clinica", item.Marca)
	assert.Equal(t, []string{"instagram", "tiktok"}, item.Canais)

	assert.Equal(t, ProviderHeuristic, metadata.Provider)
	assert.Equal(t, 1, metadata.ItemsDetected)
}

func TestHeuristicProvider_NoSeparatorsSingleItem(t *testing.T) {
	provider := newTestProvider()

	items, metadata, err := provider.Parse(context.Background(),
		"Vídeo mostrando os bastidores da produção de conteúdo da marca", "")

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, metadata.ItemsDetected)
}

func TestHeuristicProvider_ShortInputZeroItems(t *testing.T) {
	provider := newTestProvider()

	items, metadata, err := provider.Parse(context.Background(), "nota curta", "")

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 0, metadata.ItemsDetected)
}

func TestHeuristicProvider_UnknownBrandDefaultChannels(t *testing.T) {
	provider := newTestProvider()

	items, _, err := provider.Parse(context.Background(),
		"Título: Série sobre autocuidado\nDescrição: conteúdo semanal sobre rotinas de autocuidado", "marca_nova")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, []string{"instagram"}, items[0].Canais)
}

func TestHeuristicProvider_EverySectionAboveFloorYieldsItem(t *testing.T) {
	provider := newTestProvider()

	text := "Primeira anotação solta sem estrutura nenhuma de pauta\n---\nSegunda anotação igualmente solta sem campos rotulados"

	items, metadata, err := provider.Parse(context.Background(), text, "")

	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, metadata.ItemsDetected)
}

func TestHeuristicProvider_MultipleSections(t *testing.T) {
	provider := newTestProvider()

	text := `IDEIA 1:
Título: Como montar um roteiro simples
Descrição: passo a passo para roteirizar vídeos curtos sem travar

IDEIA 2:
Título: Promoção de aniversário da marca
Descrição: oferta por tempo limitado para a base de seguidores`

	items, metadata, err := provider.Parse(context.Background(), text, "clinica")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, metadata.ItemsDetected)

	assert.Equal(t, entity.TipoEducativo, items[0].Tipo)
	assert.Equal(t, entity.ObjetivoConversao, items[1].Objetivo)
}
