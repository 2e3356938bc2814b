package dto

import "github.com/meeplemeet/meeplemeet-api/internal/models"

// RentalReportRequest captures the POST /space-renters/:id/exports payload.
type RentalReportRequest struct {
	Format models.ExportFormat `json:"format" validate:"required,oneof=csv pdf"`
}

// RentalReportJobResponse is returned after enqueueing an export.
type RentalReportJobResponse struct {
	ID       string              `json:"id"`
	Status   models.ExportStatus `json:"status"`
	Progress int                 `json:"progress"`
}

// RentalReportStatusResponse exposes job progress metadata.
type RentalReportStatusResponse struct {
	ID        string              `json:"id"`
	Status    models.ExportStatus `json:"status"`
	Progress  int                 `json:"progress"`
	ResultURL *string             `json:"result_url,omitempty"`
	Error     *string             `json:"error,omitempty"`
}
