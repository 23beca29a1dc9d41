package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"nis2-copilot/config"
)

// S3Store persists blobs in an S3 bucket. A custom endpoint switches the
// client to path-style addressing (MinIO, LocalStack).
type S3Store struct {
	client     *s3.Client
	bucket     string
	prefix     string
	region     string
	publicBase string
}

func NewS3Store(ctx context.Context, cfg config.S3Config, publicBaseURL string) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 storage requires a bucket")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	prefix := cfg.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Store{
		client:     client,
		bucket:     cfg.Bucket,
		prefix:     prefix,
		region:     cfg.Region,
		publicBase: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

func (s *S3Store) Put(ctx context.Context, objectPath string, data []byte, contentType string) (PutResult, error) {
	clean, err := cleanObjectPath(objectPath)
	if err != nil {
		return PutResult{}, err
	}
	key := s.prefix + clean
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return PutResult{}, fmt.Errorf("s3 put %s: %w", key, err)
	}
	return PutResult{URL: s.objectURL(key), Path: key, Size: int64(len(data))}, nil
}

func (s *S3Store) objectURL(key string) string {
	if s.publicBase != "" {
		return s.publicBase + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
