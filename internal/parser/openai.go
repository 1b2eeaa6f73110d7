package parser

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/conteudoflow/os-tracker/internal/domain/entity"
)

// ProviderOpenAI is the metadata tag of the model-backed provider.
const ProviderOpenAI = "OPENAI"

// OpenAIProvider extracts ideas with a chat model. Any API or parse failure
// falls back to the heuristic provider so an import run never depends on the
// model being reachable.
type OpenAIProvider struct {
	client   *openai.Client
	model    string
	fallback *HeuristicProvider
	channels ChannelConfig
	logger   *zap.Logger
}

// NewOpenAIProvider creates a model-backed parse provider.
func NewOpenAIProvider(apiKey, model string, fallback *HeuristicProvider, channels ChannelConfig, logger *zap.Logger) *OpenAIProvider {
	return &OpenAIProvider{
		client:   openai.NewClient(apiKey),
		model:    model,
		fallback: fallback,
		channels: channels,
		logger:   logger,
	}
}

// Name implements port.ParseProvider.
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// parsedItem is the JSON shape the model is asked to produce.
type parsedItem struct {
	Titulo     string   `json:"titulo"`
	Descricao  string   `json:"descricao"`
	Objetivo   string   `json:"objetivo"`
	Tipo       string   `json:"tipo"`
	Prioridade string   `json:"prioridade"`
	Gancho     string   `json:"gancho"`
	CTA        string   `json:"cta"`
	Roteiro    string   `json:"roteiro"`
	Legenda    string   `json:"legenda"`
	Prazo      string   `json:"prazo"`
	Links      []string `json:"links"`
}

// Parse asks the model for structured items and normalizes the answer into
// ParsedIdea records. On any failure it degrades to the heuristic pipeline.
func (p *OpenAIProvider) Parse(ctx context.Context, text, defaultBrand string) ([]entity.ParsedIdea, entity.ImportMetadata, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Você é um assistente que estrutura ideias de conteúdo de marketing a partir de texto livre. Responda sempre com JSON válido.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: p.buildPrompt(text),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		p.logger.Warn("OpenAI parse failed, falling back to heuristics", zap.Error(err))
		return p.fallback.Parse(ctx, text, defaultBrand)
	}

	if len(resp.Choices) == 0 {
		p.logger.Warn("OpenAI returned no choices, falling back to heuristics")
		return p.fallback.Parse(ctx, text, defaultBrand)
	}

	var payload struct {
		Items []parsedItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		p.logger.Warn("Failed to parse OpenAI response, falling back to heuristics",
			zap.Error(err))
		return p.fallback.Parse(ctx, text, defaultBrand)
	}

	items := make([]entity.ParsedIdea, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.Titulo == "" {
			continue
		}
		items = append(items, p.normalize(item, defaultBrand))
	}

	metadata := entity.ImportMetadata{
		Provider:      ProviderOpenAI,
		TextLength:    len(text),
		ItemsDetected: len(items),
	}

	p.logger.Info("OpenAI parse completed",
		zap.Int("items", len(items)),
		zap.Int("text_length", len(text)))

	return items, metadata, nil
}

// normalize fills defaults for anything the model left blank, using the same
// taxonomies and channel table as the heuristic pipeline.
func (p *OpenAIProvider) normalize(item parsedItem, defaultBrand string) entity.ParsedIdea {
	descricao := item.Descricao
	if descricao == "" {
		descricao = FallbackDescription
	}

	objetivo, tipo, prioridade := p.fallback.classifier.Classify(item.Titulo + " " + descricao)
	if o := entity.Objective(item.Objetivo); o == entity.ObjetivoAtracao || o == entity.ObjetivoNutricao || o == entity.ObjetivoConversao {
		objetivo = o
	}
	if t := entity.ContentType(item.Tipo); t == entity.TipoEducativo || t == entity.TipoHistoria || t == entity.TipoConversao {
		tipo = t
	}
	if pr := entity.Priority(item.Prioridade); pr == entity.PrioridadeBaixa || pr == entity.PrioridadeMedia || pr == entity.PrioridadeAlta {
		prioridade = pr
	}

	var links []string
	for _, link := range item.Links {
		if isAllowedMediaHost(link) {
			links = append(links, link)
		}
	}

	return entity.ParsedIdea{
		Titulo:     item.Titulo,
		Descricao:  descricao,
		Marca:      defaultBrand,
		Objetivo:   objetivo,
		Tipo:       tipo,
		Prioridade: prioridade,
		Canais:     p.channels.ChannelsFor(defaultBrand),
		Gancho:     item.Gancho,
		CTA:        item.CTA,
		Roteiro:    item.Roteiro,
		Legenda:    item.Legenda,
		Prazo:      item.Prazo,
		LinksMidia: links,
	}
}

func (p *OpenAIProvider) buildPrompt(text string) string {
	return fmt.Sprintf(`Extraia as ideias de conteúdo do texto abaixo.

Retorne um objeto JSON com esta estrutura:
{"items": [{"titulo": "string", "descricao": "string", "objetivo": "atracao|nutricao|conversao", "tipo": "educativo|historia|conversao", "prioridade": "baixa|media|alta", "gancho": "string", "cta": "string", "roteiro": "string", "legenda": "string", "prazo": "string", "links": ["string"]}]}

Regras:
- Uma entrada por ideia identificada no texto.
- Campos ausentes ficam como string vazia.
- Não invente informações que não estão no texto.

TEXTO:
%s`, text)
}
