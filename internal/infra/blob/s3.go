// Package blob archives raw webhook payloads to S3-compatible object storage.
package blob

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase/commands"
)

// objectPutter is the subset of *s3.Client the archive uses.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Archive struct {
	client objectPutter
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3Archive builds an S3 client from static credentials. A custom endpoint
// switches to path-style addressing for MinIO and similar providers.
func NewS3Archive(ctx context.Context, cfg config.StorageConfig) (*S3Archive, error) {
	if cfg.Bucket == "" {
		return nil, errs.Mark(errs.New("s3: bucket name is required"), errs.ErrConfiguration)
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, errs.Wrap(err, "s3: load aws config")
	}

	var opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		endpoint := normaliseEndpoint(cfg.Endpoint)
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}
	return newS3Archive(s3.NewFromConfig(awsCfg, opts...), cfg.Bucket, cfg.Prefix), nil
}

func newS3Archive(client objectPutter, bucket, prefix string) *S3Archive {
	return &S3Archive{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

// Archive stores payload under <prefix>YYYY/MM/DD/<eventID>.json.
func (a *S3Archive) Archive(ctx context.Context, eventID string, payload []byte) error {
	key := a.objectKey(eventID)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return errs.Wrapf(err, "s3: put object %s", key)
	}
	return nil
}

func (a *S3Archive) objectKey(eventID string) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(eventID)
	if name == "" {
		name = "unknown"
	}
	return a.prefix + a.now().UTC().Format("2006/01/02") + "/" + name + ".json"
}

func normaliseEndpoint(endpoint string) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	return "https://" + endpoint
}

// NoopArchive drops payloads when object storage is disabled.
type NoopArchive struct{}

func (NoopArchive) Archive(context.Context, string, []byte) error { return nil }

var (
	_ commands.WebhookArchive = (*S3Archive)(nil)
	_ commands.WebhookArchive = NoopArchive{}
)
