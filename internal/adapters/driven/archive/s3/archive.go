// Package s3 backs up attachments to S3-compatible object storage
// (AWS, MinIO, DigitalOcean Spaces).
package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
)

// Ensure Archive implements the interface.
var _ driven.AttachmentArchive = (*Archive)(nil)

// keyPrefix groups archived attachments in the bucket.
const keyPrefix = "attachments"

// putObjectAPI is the subset of the S3 client the archive uses.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archive uploads attachments under attachments/YYYY/MM/<key>.
type Archive struct {
	client putObjectAPI
	bucket string
	now    func() time.Time
}

// New creates an archive from settings.
func New(ctx context.Context, cfg domain.ArchiveSettings) (*Archive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket name is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("S3 credentials are required")
	}

	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newArchive(client, cfg.Bucket), nil
}

func newArchive(client putObjectAPI, bucket string) *Archive {
	return &Archive{client: client, bucket: bucket, now: time.Now}
}

// Put uploads the attachment and returns its s3:// location.
func (a *Archive) Put(ctx context.Context, key string, attachment *domain.Attachment) (string, error) {
	if key == "" || attachment == nil {
		return "", fmt.Errorf("%w: key and attachment are required", domain.ErrInvalidInput)
	}

	now := a.now()
	objectKey := path.Join(keyPrefix, fmt.Sprintf("%04d", now.Year()), fmt.Sprintf("%02d", int(now.Month())), key)

	input := &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(attachment.Data),
		ContentLength: aws.Int64(int64(len(attachment.Data))),
		Metadata:      map[string]string{"original-name": attachment.Name},
	}
	if attachment.MIMEType != "" {
		input.ContentType = aws.String(attachment.MIMEType)
	}

	if _, err := a.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("upload %s: %w", objectKey, err)
	}
	return "s3://" + a.bucket + "/" + objectKey, nil
}
