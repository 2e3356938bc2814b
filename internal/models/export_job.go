package models

import "time"

// ExportFormat enumerates supported export formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportStatus captures background job lifecycle states.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "QUEUED"
	ExportStatusProcessing ExportStatus = "PROCESSING"
	ExportStatusFinished   ExportStatus = "FINISHED"
	ExportStatusFailed     ExportStatus = "FAILED"
	// ExportStatusExpired marks a finished job whose file was purged.
	ExportStatusExpired ExportStatus = "EXPIRED"
)

// ExportJob is persisted metadata for an asynchronous rental export.
type ExportJob struct {
	ID            string       `db:"id" json:"id"`
	SpaceRenterID string       `db:"space_renter_id" json:"space_renter_id"`
	Format        ExportFormat `db:"format" json:"format"`
	Status        ExportStatus `db:"status" json:"status"`
	Progress      int          `db:"progress" json:"progress"`
	ResultURL     *string      `db:"result_url" json:"result_url,omitempty"`
	CreatedBy     string       `db:"created_by" json:"created_by"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	FinishedAt    *time.Time   `db:"finished_at" json:"finished_at,omitempty"`
	ErrorMessage  *string      `db:"error_message" json:"error_message,omitempty"`
}
