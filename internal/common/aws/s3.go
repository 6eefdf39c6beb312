// internal/common/aws/s3.go
package aws

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"crew-pipeline/internal/common/config"
	pipeerrors "crew-pipeline/internal/common/errors"
)

// BlobStore is the document blob store gateway.
type BlobStore interface {
	Put(ctx context.Context, path string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, path string) ([]byte, error)
}

// S3Client implements BlobStore over an S3 (or S3-compatible) bucket.
type S3Client struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Client(ctx context.Context, cfg config.S3Config) (*S3Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Client{client: client, bucket: cfg.Bucket, region: cfg.Region}, nil
}

// Put uploads a blob and returns its resolvable URL.
func (s *S3Client) Put(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", pipeerrors.NewBlobUploadFailedError(path, err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, path), nil
}

// Get downloads a blob by path.
func (s *S3Client) Get(ctx context.Context, path string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, pipeerrors.NewBlobDownloadFailedError(path, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, pipeerrors.NewBlobDownloadFailedError(path, err)
	}
	return data, nil
}

// DocumentPath builds the storage key for a candidate document.
func DocumentPath(candidateID, docType, filename string) string {
	return fmt.Sprintf("%s/%s/%s", candidateID, docType, SanitizeFilename(filename))
}

var (
	nonASCIIRe     = regexp.MustCompile(`[^\x00-\x7F]+`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	disallowedRe   = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	underscoreRuns = regexp.MustCompile(`_+`)
	dotRuns        = regexp.MustCompile(`\.+`)
)

// SanitizeFilename strips characters that cause storage key issues. Empty or
// degenerate results are replaced with a generated name.
func SanitizeFilename(filename string) string {
	filename = nonASCIIRe.ReplaceAllString(filename, "")
	filename = strings.NewReplacer("'", "", `"`, "").Replace(filename)
	filename = whitespaceRe.ReplaceAllString(filename, "_")
	filename = disallowedRe.ReplaceAllString(filename, "")
	filename = underscoreRuns.ReplaceAllString(filename, "_")
	filename = dotRuns.ReplaceAllString(filename, ".")

	if filename == "" || filename == "." || filename == "_" || filename == "-" {
		filename = fmt.Sprintf("document_%s", uuid.New().String()[:8])
	}
	return filename
}
