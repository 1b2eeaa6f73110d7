package entity

import "time"

// ParsedIdea is the ephemeral output of the import pipeline, before a human
// commits it. Title and Descricao are never empty: the extractor substitutes
// placeholder text when it cannot find a usable line.
type ParsedIdea struct {
	Titulo         string      `json:"titulo"`
	Descricao      string      `json:"descricao"`
	Marca          string      `json:"marca"`
	Objetivo       Objective   `json:"objetivo"`
	Tipo           ContentType `json:"tipo"`
	Prioridade     Priority    `json:"prioridade"`
	Canais         []string    `json:"canais"`
	Gancho         string      `json:"gancho,omitempty"`
	CTA            string      `json:"cta,omitempty"`
	Roteiro        string      `json:"roteiro,omitempty"`
	Legenda        string      `json:"legenda,omitempty"`
	Prazo          string      `json:"prazo,omitempty"`
	LinksMidia     []string    `json:"links_midia,omitempty"`
	DataPublicacao string      `json:"data_publicacao,omitempty"`
}

// Idea is a committed content proposal awaiting review. It is created
// pendente by the import commit step, mutated exactly once to a terminal
// status by an approver, and immutable afterwards except for pre-approval
// edits.
type Idea struct {
	ID             string      `json:"id"`
	Titulo         string      `json:"titulo"`
	Descricao      string      `json:"descricao"`
	Marca          string      `json:"marca"`
	Objetivo       Objective   `json:"objetivo"`
	Tipo           ContentType `json:"tipo"`
	Prioridade     Priority    `json:"prioridade"`
	Canais         []string    `json:"canais"`
	Gancho         string      `json:"gancho,omitempty"`
	CTA            string      `json:"cta,omitempty"`
	Roteiro        string      `json:"roteiro,omitempty"`
	Legenda        string      `json:"legenda,omitempty"`
	Prazo          string      `json:"prazo,omitempty"`
	LinksMidia     []string    `json:"links_midia,omitempty"`
	Status         IdeaStatus  `json:"status"`
	AprovadaPor    string      `json:"aprovada_por,omitempty"`
	RejeitadaPor   string      `json:"rejeitada_por,omitempty"`
	MotivoRejeicao string      `json:"motivo_rejeicao,omitempty"`
	OSCriadaID     string      `json:"os_criada_id,omitempty"`
	OrgID          string      `json:"org_id"`
	CriadaPor      string      `json:"criada_por"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// IdeaPatch carries pre-approval edits. Nil fields are left untouched.
type IdeaPatch struct {
	Titulo     *string      `json:"titulo,omitempty"`
	Descricao  *string      `json:"descricao,omitempty"`
	Marca      *string      `json:"marca,omitempty"`
	Objetivo   *Objective   `json:"objetivo,omitempty"`
	Tipo       *ContentType `json:"tipo,omitempty"`
	Prioridade *Priority    `json:"prioridade,omitempty"`
	Gancho     *string      `json:"gancho,omitempty"`
	CTA        *string      `json:"cta,omitempty"`
	Roteiro    *string      `json:"roteiro,omitempty"`
	Legenda    *string      `json:"legenda,omitempty"`
	Prazo      *string      `json:"prazo,omitempty"`
}
