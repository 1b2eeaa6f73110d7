package entity

import "time"

// ImportError records one item that failed to persist during a commit run.
type ImportError struct {
	Item  string `json:"item"`
	Error string `json:"error"`
}

// ImportSession is the audit record of one ingestion run. It is inserted
// before the commit loop and updated once with final counts; the core never
// deletes it.
type ImportSession struct {
	ID            string        `json:"id"`
	OrgID         string        `json:"org_id"`
	UserID        string        `json:"user_id"`
	SourceType    SourceType    `json:"source_type"`
	TamanhoBytes  int           `json:"tamanho_bytes"`
	ItemsDetected int           `json:"items_detected"`
	ItemsCreated  int           `json:"items_created"`
	ItemsSkipped  int           `json:"items_skipped"`
	ErrorDetails  []ImportError `json:"error_details,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ImportMetadata describes a parse run, returned alongside the parsed items.
type ImportMetadata struct {
	Provider      string `json:"provider"`
	TextLength    int    `json:"text_length"`
	ItemsDetected int    `json:"items_detected"`
}

// CommitResult summarizes one commit run. Partial success is expected:
// per-item failures land in Errors without aborting the batch.
type CommitResult struct {
	Created int           `json:"created"`
	Skipped int           `json:"skipped"`
	Errors  []ImportError `json:"errors"`
}
