package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/meeplemeet/meeplemeet-api/internal/dto"
	"github.com/meeplemeet/meeplemeet-api/internal/models"
	"github.com/meeplemeet/meeplemeet-api/internal/service"
	appErrors "github.com/meeplemeet/meeplemeet-api/pkg/errors"
	"github.com/meeplemeet/meeplemeet-api/pkg/response"
)

type reportService interface {
	CreateJob(ctx context.Context, spaceRenterID string, req dto.RentalReportRequest, actor *models.JWTClaims) (*dto.RentalReportJobResponse, error)
	GetStatus(ctx context.Context, id string, actor *models.JWTClaims) (*dto.RentalReportStatusResponse, error)
	ResolveDownload(ctx context.Context, token string) (*service.ReportDownload, error)
}

// ReportHandler exposes rental export endpoints.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs ReportHandler. A nil service answers 503 for every route.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// CreateExport godoc
// @Summary Export rentals of a space renter
// @Tags Exports
// @Accept json
// @Produce json
// @Param id path string true "Space renter ID"
// @Param payload body dto.RentalReportRequest true "Export format"
// @Success 202 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /space-renters/{id}/exports [post]
func (h *ReportHandler) CreateExport(c *gin.Context) {
	if !h.enabled(c) {
		return
	}
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.RentalReportRequest
	if !bindJSON(c, &req, "invalid export payload") {
		return
	}
	req.Format = models.ExportFormat(strings.ToLower(string(req.Format)))
	job, err := h.reports.CreateJob(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, job)
}

// Status godoc
// @Summary Export job status
// @Tags Exports
// @Produce json
// @Param id path string true "Export job ID"
// @Success 200 {object} response.Envelope
// @Router /exports/{id} [get]
func (h *ReportHandler) Status(c *gin.Context) {
	if !h.enabled(c) {
		return
	}
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	status, err := h.reports.GetStatus(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, status)
}

// Download godoc
// @Summary Download export via signed token
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Router /exports/download/{token} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	if !h.enabled(c) {
		return
	}
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	result, err := h.reports.ResolveDownload(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer result.File.Close() //nolint:errcheck

	info, err := result.File.Stat()
	if err != nil {
		response.Error(c, appErrors.Internal(err, "failed to stat export file"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), contentType(result.Format), result.File, nil)
}

func (h *ReportHandler) enabled(c *gin.Context) bool {
	if h.reports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnavailable, "rental exports are disabled"))
		return false
	}
	return true
}

func contentType(format models.ExportFormat) string {
	if format == models.ExportFormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}
