// Package storage archives sent invoice documents.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	appbilling "github.com/invoiceme/backend/internal/application/billing"
	"github.com/invoiceme/backend/internal/domain/billing"
	"go.uber.org/zap"
)

// FilesystemArchiver stores sent invoice PDFs on local disk,
// partitioned by year and month of the send time.
type FilesystemArchiver struct {
	root   string
	logger *zap.Logger
}

// NewFilesystemArchiver creates an archiver rooted at the given directory
func NewFilesystemArchiver(root string, logger *zap.Logger) (*FilesystemArchiver, error) {
	if root == "" {
		return nil, fmt.Errorf("archive root directory is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &FilesystemArchiver{root: root, logger: logger}, nil
}

// ArchiveInvoicePDF writes the PDF under <root>/<year>/<month>/ and
// returns the file path
func (a *FilesystemArchiver) ArchiveInvoicePDF(ctx context.Context, inv *billing.Invoice, pdf []byte) (string, error) {
	if len(pdf) == 0 {
		return "", fmt.Errorf("invoice PDF is empty")
	}

	dir := filepath.Join(a.root, time.Now().UTC().Format("2006"), time.Now().UTC().Format("01"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	path := filepath.Join(dir, archiveFileName(inv))
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		return "", fmt.Errorf("failed to write archive file: %w", err)
	}

	a.logger.Info("Invoice archived",
		zap.String("invoice_number", inv.Number()),
		zap.String("path", path))
	return path, nil
}

// archiveFileName builds a collision-free file name from the invoice
// number and ID
func archiveFileName(inv *billing.Invoice) string {
	return fmt.Sprintf("%s-%s.pdf", inv.Number(), inv.ID.String())
}

var _ appbilling.InvoiceArchiver = (*FilesystemArchiver)(nil)
