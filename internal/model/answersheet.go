package model

import (
	"time"

	"github.com/google/uuid"
)

// SheetStatus tracks an uploaded answer sheet through processing.
type SheetStatus string

const (
	SheetStatusUploaded   SheetStatus = "UPLOADED"
	SheetStatusProcessing SheetStatus = "PROCESSING"
	SheetStatusProcessed  SheetStatus = "PROCESSED"
	SheetStatusFailed     SheetStatus = "FAILED"
)

// Terminal reports whether no further transitions can happen.
func (s SheetStatus) Terminal() bool {
	return s == SheetStatusProcessed || s == SheetStatusFailed
}

// AnswerSheet is a scanned student answer sheet attached to a paper.
type AnswerSheet struct {
	ID          uuid.UUID   `json:"id"`
	PaperID     uuid.UUID   `json:"paper_id"`
	UploaderID  int         `json:"uploader_id"`
	StudentName string      `json:"student_name"`
	FileURL     string      `json:"file_url"`
	Status      SheetStatus `json:"status"`
	FailReason  string      `json:"fail_reason,omitempty"`
	ProcessedAt *time.Time  `json:"processed_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// SheetProgressEvent is published on the sheet's Redis channel while the
// worker advances it, and forwarded verbatim over the status WebSocket.
type SheetProgressEvent struct {
	SheetID  string      `json:"sheet_id"`
	Status   SheetStatus `json:"status"`
	Progress int         `json:"progress"` // 0-100
	Message  string      `json:"message,omitempty"`
}
