package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectPutter is the part of *s3.Client the store uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// NewS3Client builds a client from static credentials. A custom endpoint
// switches to path-style addressing for S3-compatible stores.
func NewS3Client(cfg S3Config) *s3.Client {
	awsCfg := aws.Config{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
}

type ReferenceImageStore struct {
	client    ObjectPutter
	processor *ImageProcessor
	bucket    string
	baseURL   string
}

func NewReferenceImageStore(client ObjectPutter, processor *ImageProcessor, cfg S3Config) *ReferenceImageStore {
	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &ReferenceImageStore{
		client:    client,
		processor: processor,
		bucket:    cfg.Bucket,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// Upload transcodes data to WebP and stores it under the owner's prefix.
// The returned URL is what clients put in referenceImages.
func (s *ReferenceImageStore) Upload(ctx context.Context, ownerID uuid.UUID, data []byte) (string, error) {
	encoded, err := s.processor.ToWebP(data)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("reference-images/%s/%s.webp", ownerID, uuid.New())

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(encoded),
		ContentType:  aws.String("image/webp"),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	}); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}

	return s.baseURL + "/" + key, nil
}
