package archive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader ships one object per archive window to S3.
type Uploader struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewUploader resolves AWS credentials the standard way (environment,
// shared config, EC2/ECS role) via aws-sdk-go-v2/config and builds a
// client for bucket.
func NewUploader(ctx context.Context, bucket, prefix string) (*Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("archive: failed to load aws config: %w", err)
	}

	return &Uploader{
		client: s3.NewFromConfig(awsCfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Upload PUTs the encoded window payload under a key derived from the
// cluster name and window bounds.
func (u *Uploader) Upload(ctx context.Context, key string, payload []byte) error {
	fullKey := key
	if u.prefix != "" {
		fullKey = u.prefix + "/" + key
	}

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(fullKey),
		Body:          bytes.NewReader(payload),
		ContentLength: aws.Int64(int64(len(payload))),
		ContentType:   aws.String("application/x-ndjson+snappy"),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return nil
}
