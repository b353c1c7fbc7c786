package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appbilling "github.com/invoiceme/backend/internal/application/billing"
	"github.com/invoiceme/backend/internal/domain/billing"
	"github.com/invoiceme/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// S3Archiver stores sent invoice PDFs in an S3 bucket. It works with
// any S3-compatible backend (AWS S3, MinIO, etc.)
type S3Archiver struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// NewS3Archiver creates an archiver from storage configuration
func NewS3Archiver(cfg config.StorageConfig, logger *zap.Logger) (*S3Archiver, error) {
	if cfg.S3Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if cfg.S3AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3UsePathStyle
		if cfg.S3Endpoint != "" {
			endpoint := cfg.S3Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &S3Archiver{
		client: client,
		bucket: cfg.S3Bucket,
		logger: logger,
	}, nil
}

// ArchiveInvoicePDF uploads the PDF under invoices/<year>/<month>/ and
// returns the object key
func (a *S3Archiver) ArchiveInvoicePDF(ctx context.Context, inv *billing.Invoice, pdf []byte) (string, error) {
	if len(pdf) == 0 {
		return "", errors.New("invoice PDF is empty")
	}

	key := fmt.Sprintf("invoices/%s/%s", time.Now().UTC().Format("2006/01"), archiveFileName(inv))

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload invoice archive: %w", err)
	}

	a.logger.Info("Invoice archived",
		zap.String("invoice_number", inv.Number()),
		zap.String("bucket", a.bucket),
		zap.String("key", key))
	return key, nil
}

var _ appbilling.InvoiceArchiver = (*S3Archiver)(nil)
