package parser

import (
	"strings"

	"github.com/conteudoflow/os-tracker/internal/domain/entity"
)

// ClassifierConfig holds the keyword lists for each taxonomy. The cascade is
// order-sensitive: the first category block with a hit wins, regardless of
// how many keywords other blocks would match.
type ClassifierConfig struct {
	ConversionKeywords  []string
	NurtureKeywords     []string
	EducationalKeywords []string
	StoryKeywords       []string
	HighKeywords        []string
	LowKeywords         []string
	MediumKeywords      []string
}

// DefaultClassifierConfig returns the stock keyword tables.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		ConversionKeywords:  []string{"compre", "adquira", "promocao", "desconto", "oferta", "venda"},
		NurtureKeywords:     []string{"beneficio", "vantagem", "porque", "resultado", "transformacao"},
		EducationalKeywords: []string{"como", "tutorial", "dica", "aprenda", "passo a passo"},
		StoryKeywords:       []string{"historia", "experiencia", "relato", "jornada", "caso"},
		HighKeywords:        []string{"urgente", "importante", "critico", "prioritario", "alta", "high"},
		LowKeywords:         []string{"opcional", "futuro", "quando possivel", "baixa", "low"},
		MediumKeywords:      []string{"media", "medium", "normal"},
	}
}

// Classifier assigns objective, type and priority from keyword heuristics.
// It is a pure function over the case-folded, accent-folded text.
type Classifier struct {
	cfg ClassifierConfig
}

// NewClassifier creates a classifier with the given keyword tables.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify returns exactly one value per taxonomy.
func (c *Classifier) Classify(text string) (entity.Objective, entity.ContentType, entity.Priority) {
	folded := foldText(text)
	return c.classifyObjective(folded), c.classifyType(folded), c.classifyPriority(folded)
}

func (c *Classifier) classifyObjective(folded string) entity.Objective {
	if containsAny(folded, c.cfg.ConversionKeywords) {
		return entity.ObjetivoConversao
	}
	if containsAny(folded, c.cfg.NurtureKeywords) {
		return entity.ObjetivoNutricao
	}
	return entity.ObjetivoAtracao
}

func (c *Classifier) classifyType(folded string) entity.ContentType {
	if containsAny(folded, c.cfg.EducationalKeywords) {
		return entity.TipoEducativo
	}
	if containsAny(folded, c.cfg.StoryKeywords) {
		return entity.TipoHistoria
	}
	return entity.TipoConversao
}

func (c *Classifier) classifyPriority(folded string) entity.Priority {
	if containsAny(folded, c.cfg.HighKeywords) {
		return entity.PrioridadeAlta
	}
	if containsAny(folded, c.cfg.LowKeywords) {
		return entity.PrioridadeBaixa
	}
	// MediumKeywords and the no-keyword case both land on the default.
	return entity.PrioridadeMedia
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// accentFolder maps the accented letters common in Portuguese copy to their
// base form so "promoção" matches the keyword "promocao".
var accentFolder = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

func foldText(text string) string {
	return accentFolder.Replace(strings.ToLower(text))
}
