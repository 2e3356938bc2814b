package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
	"github.com/meeplemeet/meeplemeet-api/pkg/export"
	"github.com/meeplemeet/meeplemeet-api/pkg/storage"
)

type rentalSourceStub struct{}

func (rentalSourceStub) ListBySpaceRenter(ctx context.Context, spaceRenterID string) ([]models.Rental, error) {
	discussionID := "disc-1"
	return []models.Rental{
		{
			ID:                  "rental-1",
			RenterID:            "renter-1",
			SpaceRenterID:       spaceRenterID,
			StartDate:           time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
			EndDate:             time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC),
			Status:              models.RentalStatusActive,
			TotalCost:           30,
			SessionDiscussionID: &discussionID,
		},
	}, nil
}

func exportRenters() spaceRenterLookupStub {
	return spaceRenterLookupStub{renters: map[string]*models.SpaceRenter{
		"sr-1": {ID: "sr-1", OwnerID: "owner-1", Name: "The Dice Tower"},
	}}
}

func newExportServiceForTest(t *testing.T) (*ExportService, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewDownloadSigner("secret", time.Hour)
	cfg := ExportConfig{APIPrefix: "/api/v1", ResultTTL: time.Hour, Availability: testAvailabilityConfig()}
	svc := NewExportService(rentalSourceStub{}, exportRenters(), store, signer, cfg, zap.NewNop(), export.NewCSVRenderer(), export.NewPDFRenderer())
	return svc, store
}

func TestExportServiceGenerateCSV(t *testing.T) {
	svc, store := newExportServiceForTest(t)
	job := &models.ExportJob{ID: "job-1", SpaceRenterID: "sr-1", Format: models.ExportFormatCSV, CreatedBy: "owner-1"}

	result, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(result.RelativePath, "rentals/sr-1_"))
	require.Equal(t, "/api/v1/exports/download/"+result.Token, result.URL)

	file, err := store.Open(result.RelativePath)
	require.NoError(t, err)
	defer file.Close()
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Rental ID,Renter ID,Space,Window,Status,Total Cost,Session,Notes")
	assert.Contains(t, string(content), "rental-1,renter-1,1,\"Mon, 02 Mar 2026, 10:00 - 12:00\",ACTIVE,30.00,disc-1,")

	claims, err := svc.VerifyToken(result.Token, false)
	require.NoError(t, err)
	assert.Equal(t, "job-1", claims.JobID)
	assert.Equal(t, result.RelativePath, claims.Path)
}

func TestExportServiceGeneratePDF(t *testing.T) {
	svc, store := newExportServiceForTest(t)
	job := &models.ExportJob{ID: "job-2", SpaceRenterID: "sr-1", Format: models.ExportFormatPDF, CreatedBy: "owner-1"}

	result, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)
	require.Equal(t, models.ExportFormatPDF, result.Format)

	file, err := store.Open(result.RelativePath)
	require.NoError(t, err)
	defer file.Close()
	info, err := file.Stat()
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestExportServiceGenerateRejectsUnknownInputs(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	_, err := svc.Generate(context.Background(), &models.ExportJob{ID: "job-3", SpaceRenterID: "sr-1", Format: "xlsx"})
	require.Error(t, err)

	_, err = svc.Generate(context.Background(), &models.ExportJob{ID: "job-4", SpaceRenterID: "missing", Format: models.ExportFormatCSV})
	require.Error(t, err)

	_, err = svc.Generate(context.Background(), nil)
	require.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "na", sanitizeFilename(""))
	assert.Equal(t, "a-b_c", sanitizeFilename("a/b c"))
	assert.Len(t, sanitizeFilename(strings.Repeat("x", 150)), 100)
}
