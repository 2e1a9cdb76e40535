package archive

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/invoicextractor/internal/client/config"
	"github.com/dmitrijs2005/invoicextractor/internal/logging"
)

// Archiver stores a local file under key.
type Archiver interface {
	Archive(ctx context.Context, key, localPath string) error
}

// Noop discards every request.
type Noop struct{}

func (Noop) Archive(context.Context, string, string) error { return nil }

// objectPutter is the part of *s3.Client the archiver needs.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Archiver uploads invoices to a single bucket.
type S3Archiver struct {
	bucket string
	client objectPutter
	log    logging.Logger
}

// New returns the archiver cfg asks for.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (Archiver, error) {
	if !cfg.ArchiveEnabled() {
		return Noop{}, nil
	}
	return NewS3Archiver(ctx, cfg, log)
}

// NewS3Archiver loads the AWS configuration for cfg.S3Region, with static
// credentials when an access key is set. A custom endpoint switches to
// path-style addressing for S3-compatible stores.
func NewS3Archiver(ctx context.Context, cfg *config.Config, log logging.Logger) (*S3Archiver, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.S3Region)}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archiver{bucket: cfg.S3Bucket, client: client, log: log}, nil
}

// Archive uploads localPath under key.
func (a *S3Archiver) Archive(ctx context.Context, key, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", a.bucket, key, err)
	}

	a.log.Debug(ctx, "invoice archived", "bucket", a.bucket, "key", key)
	return nil
}

// Key joins the non-empty parts with "/", trimming stray slashes.
func Key(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			kept = append(kept, p)
		}
	}
	return path.Join(kept...)
}
