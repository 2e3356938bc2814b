package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/meeplemeet/meeplemeet-api/internal/availability"
	"github.com/meeplemeet/meeplemeet-api/internal/models"
	"github.com/meeplemeet/meeplemeet-api/pkg/export"
	"github.com/meeplemeet/meeplemeet-api/pkg/storage"
)

type rentalSource interface {
	ListBySpaceRenter(ctx context.Context, spaceRenterID string) ([]models.Rental, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix    string
	ResultTTL    time.Duration
	Availability availability.Config
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ExportFormat
	ExpiresAt    time.Time
}

var rentalExportHeaders = []string{"Rental ID", "Renter ID", "Space", "Window", "Status", "Total Cost", "Session", "Notes"}

// ExportService renders a space renter's rentals and persists the file.
type ExportService struct {
	rentals rentalSource
	renters spaceRenterLookup
	storage fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	signer  *storage.DownloadSigner
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(rentals rentalSource, renters spaceRenterLookup, storage fileStorage, signer *storage.DownloadSigner, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVRenderer()
	}
	if pdf == nil {
		pdf = export.NewPDFRenderer()
	}
	return &ExportService{
		rentals: rentals,
		renters: renters,
		storage: storage,
		csv:     csv,
		pdf:     pdf,
		signer:  signer,
		logger:  logger,
		cfg:     cfg,
	}
}

// Generate renders the job's rentals and stores the file under a signed token.
func (s *ExportService) Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	dataset, title, err := s.buildDataset(ctx, job.SpaceRenterID)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch job.Format {
	case models.ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		err = fmt.Errorf("unsupported format %s", job.Format)
	}
	if err != nil {
		return nil, err
	}

	relPath, err := s.storage.Save(s.buildFilename(job), payload)
	if err != nil {
		return nil, err
	}

	token, claims, err := s.signer.Sign(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/exports/download/%s", prefix, token),
		Format:       job.Format,
		ExpiresAt:    claims.Expiry(),
	}, nil
}

// VerifyToken checks a download token and returns its claims.
func (s *ExportService) VerifyToken(token string, allowExpired bool) (storage.DownloadClaims, error) {
	return s.signer.Verify(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) buildFilename(job *models.ExportJob) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("rentals/%s_%s.%s", sanitizeFilename(job.SpaceRenterID), timestamp, job.Format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

func (s *ExportService) buildDataset(ctx context.Context, spaceRenterID string) (export.Dataset, string, error) {
	renter, err := s.renters.FindByID(ctx, spaceRenterID)
	if err != nil {
		return export.Dataset{}, "", err
	}
	rentals, err := s.rentals.ListBySpaceRenter(ctx, spaceRenterID)
	if err != nil {
		return export.Dataset{}, "", err
	}
	dataset := export.Dataset{Headers: rentalExportHeaders, Rows: make([][]string, 0, len(rentals))}
	for _, rental := range rentals {
		session := ""
		if rental.SessionDiscussionID != nil {
			session = *rental.SessionDiscussionID
		}
		dataset.Append(
			rental.ID,
			rental.RenterID,
			strconv.Itoa(rental.SpaceIndex+1),
			availability.DetailInfo(rental.Window(), s.cfg.Availability),
			string(rental.Status),
			fmt.Sprintf("%.2f", rental.TotalCost),
			session,
			rental.Notes,
		)
	}
	return dataset, fmt.Sprintf("Rentals - %s", renter.Name), nil
}
