package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/config"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

// ObjectUploader is the part of the S3 upload manager the exporter needs
type ObjectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Exporter uploads result sets to an S3 bucket or an S3-compatible store
type S3Exporter struct {
	uploader ObjectUploader
	cfg      config.S3Config
}

// NewS3Exporter creates an exporter from configuration. A custom endpoint
// (MinIO and friends) uses the static keys from cfg; otherwise the default
// AWS credential chain applies.
func NewS3Exporter(ctx context.Context, cfg config.S3Config) (*S3Exporter, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024 // 5MB
		u.Concurrency = 5
	})

	return &S3Exporter{uploader: uploader, cfg: cfg}, nil
}

// NewS3ExporterWithUploader wires an existing uploader
func NewS3ExporterWithUploader(uploader ObjectUploader, cfg config.S3Config) *S3Exporter {
	return &S3Exporter{uploader: uploader, cfg: cfg}
}

// ObjectKey joins the configured prefix and name
func (e *S3Exporter) ObjectKey(name string) string {
	prefix := strings.Trim(e.cfg.Prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Upload encodes the records and stores them under key (prefix applied).
// An empty key derives one from the entity type and the current time.
// Returns the full object key.
func (e *S3Exporter) Upload(ctx context.Context, key, entityType string, records []types.TestRecord, format Format) (string, error) {
	data, err := Marshal(records, format)
	if err != nil {
		return "", err
	}

	if key == "" {
		key = FileName(entityType, format, time.Now())
	}
	key = e.ObjectKey(key)

	if err := e.UploadStream(ctx, key, bytes.NewReader(data), contentType(format)); err != nil {
		return "", err
	}
	return key, nil
}

// UploadStream uploads data from an io.Reader using multipart upload
func (e *S3Exporter) UploadStream(ctx context.Context, key string, r io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(e.cfg.Bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := e.uploader.Upload(ctx, input); err != nil {
		return fmt.Errorf("failed to upload to S3 (key=%s): %w", key, err)
	}
	return nil
}

func contentType(format Format) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatCSV:
		return "text/csv"
	}
	return ""
}
