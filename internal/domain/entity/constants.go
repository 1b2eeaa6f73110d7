package entity

// IdeaStatus is the lifecycle status of an imported idea.
type IdeaStatus string

const (
	IdeaPendente  IdeaStatus = "pendente"
	IdeaAprovada  IdeaStatus = "aprovada"
	IdeaRejeitada IdeaStatus = "rejeitada"
)

// IsValid returns true if the status is a known idea status.
func (s IdeaStatus) IsValid() bool {
	switch s {
	case IdeaPendente, IdeaAprovada, IdeaRejeitada:
		return true
	}
	return false
}

// IsTerminal returns true once the idea has been approved or rejected.
func (s IdeaStatus) IsTerminal() bool {
	return s == IdeaAprovada || s == IdeaRejeitada
}

// OSStatus is a production stage of a work order. The enumeration is flat:
// update endpoints may write any valid status; only approve/reject carry
// side effects.
type OSStatus string

const (
	OSRoteiro     OSStatus = "roteiro"
	OSAudio       OSStatus = "audio"
	OSCaptacao    OSStatus = "captacao"
	OSEdicao      OSStatus = "edicao"
	OSRevisao     OSStatus = "revisao"
	OSAprovacao   OSStatus = "aprovacao"
	OSAprovado    OSStatus = "aprovado"
	OSReprovado   OSStatus = "reprovado"
	OSAgendamento OSStatus = "agendamento"
	OSPostado     OSStatus = "postado"
	OSPublicado   OSStatus = "publicado"
	OSRascunho    OSStatus = "rascunho"
)

var validOSStatuses = map[OSStatus]bool{
	OSRoteiro:     true,
	OSAudio:       true,
	OSCaptacao:    true,
	OSEdicao:      true,
	OSRevisao:     true,
	OSAprovacao:   true,
	OSAprovado:    true,
	OSReprovado:   true,
	OSAgendamento: true,
	OSPostado:     true,
	OSPublicado:   true,
	OSRascunho:    true,
}

// IsValid returns true if the status is a known work order stage.
func (s OSStatus) IsValid() bool {
	return validOSStatuses[s]
}

// String returns the string representation of the status.
func (s OSStatus) String() string {
	return string(s)
}

// Objective is the marketing objective of a piece of content.
type Objective string

const (
	ObjetivoAtracao   Objective = "atracao"
	ObjetivoNutricao  Objective = "nutricao"
	ObjetivoConversao Objective = "conversao"
)

// ContentType is the editorial format of a piece of content.
type ContentType string

const (
	TipoEducativo ContentType = "educativo"
	TipoHistoria  ContentType = "historia"
	TipoConversao ContentType = "conversao"
)

// Priority orders work by urgency.
type Priority string

const (
	PrioridadeBaixa Priority = "baixa"
	PrioridadeMedia Priority = "media"
	PrioridadeAlta  Priority = "alta"
)

// SourceType identifies how an import run received its input.
type SourceType string

const (
	SourceFileUpload SourceType = "FILE_UPLOAD"
	SourceTextPaste  SourceType = "TEXT_PASTE"
	SourceAPIImport  SourceType = "API_IMPORT"
)

// LogAction is the kind of event recorded in the audit trail.
type LogAction string

const (
	AcaoCreate       LogAction = "CREATE"
	AcaoStatusChange LogAction = "STATUS_CHANGE"
	AcaoAttachAsset  LogAction = "ATTACH_ASSET"
	AcaoReject       LogAction = "REJECT"
	AcaoApprove      LogAction = "APPROVE"
	AcaoSchedule     LogAction = "SCHEDULE"
	AcaoPost         LogAction = "POST"
)
