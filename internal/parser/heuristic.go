package parser

import (
	"context"

	"go.uber.org/zap"

	"github.com/conteudoflow/os-tracker/internal/domain/entity"
)

// ProviderHeuristic is the metadata tag of the keyword-based provider.
const ProviderHeuristic = "HEURISTIC"

// ChannelConfig maps a brand code to its default publishing channels.
// Unknown brands fall back to Default.
type ChannelConfig struct {
	PerBrand map[string][]string
	Default  []string
}

// ChannelsFor returns the default channel list for a brand.
func (c ChannelConfig) ChannelsFor(brand string) []string {
	if channels, ok := c.PerBrand[brand]; ok {
		return append([]string(nil), channels...)
	}
	return append([]string(nil), c.Default...)
}

// DefaultChannelConfig returns the stock brand→channel table.
func DefaultChannelConfig() ChannelConfig {
	return ChannelConfig{
		PerBrand: map[string][]string{},
		Default:  []string{"instagram"},
	}
}

// HeuristicProvider is the segmenter→extractor→classifier pipeline. It is
// CPU-bound, deterministic and never returns an error.
type HeuristicProvider struct {
	classifier *Classifier
	channels   ChannelConfig
	logger     *zap.Logger
}

// NewHeuristicProvider creates the heuristic parse provider.
func NewHeuristicProvider(cfg ClassifierConfig, channels ChannelConfig, logger *zap.Logger) *HeuristicProvider {
	return &HeuristicProvider{
		classifier: NewClassifier(cfg),
		channels:   channels,
		logger:     logger,
	}
}

// Name implements port.ParseProvider.
func (p *HeuristicProvider) Name() string {
	return ProviderHeuristic
}

// Parse segments the text, extracts fields per section and classifies each
// candidate. Extraction never fails, so every section above the segmenter
// floor yields one item.
func (p *HeuristicProvider) Parse(ctx context.Context, text, defaultBrand string) ([]entity.ParsedIdea, entity.ImportMetadata, error) {
	sections := Segment(text)

	items := make([]entity.ParsedIdea, 0, len(sections))
	for _, section := range sections {
		fields := ExtractFields(section)
		objetivo, tipo, prioridade := p.classifier.Classify(fields.Titulo + " " + fields.Descricao)

		items = append(items, entity.ParsedIdea{
			Titulo:         fields.Titulo,
			Descricao:      fields.Descricao,
			Marca:          defaultBrand,
			Objetivo:       objetivo,
			Tipo:           tipo,
			Prioridade:     prioridade,
			Canais:         p.channels.ChannelsFor(defaultBrand),
			Gancho:         fields.Gancho,
			CTA:            fields.CTA,
			Roteiro:        fields.Roteiro,
			Legenda:        fields.Legenda,
			Prazo:          fields.Prazo,
			DataPublicacao: fields.DataPublicacao,
			LinksMidia:     fields.LinksMidia,
		})
	}

	metadata := entity.ImportMetadata{
		Provider:      ProviderHeuristic,
		TextLength:    len(text),
		ItemsDetected: len(items),
	}

	p.logger.Info("Heuristic parse completed",
		zap.Int("sections", len(sections)),
		zap.Int("items", len(items)),
		zap.Int("text_length", len(text)))

	return items, metadata, nil
}
