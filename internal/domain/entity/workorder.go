package entity

import "time"

// WorkOrder (OS — Ordem de Serviço) tracks one piece of content through the
// production stages, from script to publication.
type WorkOrder struct {
	ID               string            `json:"id"`
	Titulo           string            `json:"titulo"`
	Descricao        string            `json:"descricao"`
	Marca            string            `json:"marca"`
	Objetivo         Objective         `json:"objetivo"`
	Tipo             ContentType       `json:"tipo"`
	Status           OSStatus          `json:"status"`
	Prioridade       Priority          `json:"prioridade"`
	Canais           []string          `json:"canais"`
	Gancho           string            `json:"gancho,omitempty"`
	CTA              string            `json:"cta,omitempty"`
	Roteiro          string            `json:"roteiro,omitempty"`
	Legenda          string            `json:"legenda,omitempty"`
	Prazo            string            `json:"prazo,omitempty"`
	LinksMidia       []string          `json:"links_midia,omitempty"`
	DataPublicacao   *time.Time        `json:"data_publicacao,omitempty"`
	PrazoSLA         *time.Time        `json:"prazo_sla,omitempty"`
	ResponsavelAtual string            `json:"responsavel_atual,omitempty"`
	Responsaveis     map[string]string `json:"responsaveis,omitempty"`
	AprovadoCrispim  bool              `json:"aprovado_crispim"`
	AprovadoMarca    bool              `json:"aprovado_marca"`
	OrgID            string            `json:"org_id"`
	CriadaPor        string            `json:"criada_por"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// VisibleTo reports whether the work order shows up for the given actor:
// org-wide viewers, the current responsible, the creator, and anyone named
// in the responsibility map.
func (os *WorkOrder) VisibleTo(actor Actor) bool {
	if actor.PodeVerTodas {
		return true
	}
	if os.ResponsavelAtual == actor.ID || os.CriadaPor == actor.ID {
		return true
	}
	for _, userID := range os.Responsaveis {
		if userID == actor.ID {
			return true
		}
	}
	return false
}

// WorkOrderPatch carries a free-form update. Nil fields are left untouched.
type WorkOrderPatch struct {
	Titulo           *string            `json:"titulo,omitempty"`
	Descricao        *string            `json:"descricao,omitempty"`
	Marca            *string            `json:"marca,omitempty"`
	Objetivo         *Objective         `json:"objetivo,omitempty"`
	Tipo             *ContentType       `json:"tipo,omitempty"`
	Status           *OSStatus          `json:"status,omitempty"`
	Prioridade       *Priority          `json:"prioridade,omitempty"`
	Gancho           *string            `json:"gancho,omitempty"`
	CTA              *string            `json:"cta,omitempty"`
	Roteiro          *string            `json:"roteiro,omitempty"`
	Legenda          *string            `json:"legenda,omitempty"`
	Prazo            *string            `json:"prazo,omitempty"`
	ResponsavelAtual *string            `json:"responsavel_atual,omitempty"`
	Responsaveis     *map[string]string `json:"responsaveis,omitempty"`
}
