// Package storage uploads public assets to S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Provider represents the S3-compatible storage provider
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderWasabi Provider = "wasabi"
)

type Config struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	// PublicBaseURL prefixes object keys in returned URLs. Derived from the
	// bucket and endpoint when empty.
	PublicBaseURL  string
	WasabiEndpoint string // e.g. "s3.ap-southeast-1.wasabisys.com"
}

// wasabiEndpoints maps regions to Wasabi endpoints
var wasabiEndpoints = map[string]string{
	"us-east-1":      "s3.us-east-1.wasabisys.com",
	"us-east-2":      "s3.us-east-2.wasabisys.com",
	"us-west-1":      "s3.us-west-1.wasabisys.com",
	"eu-central-1":   "s3.eu-central-1.wasabisys.com",
	"eu-west-1":      "s3.eu-west-1.wasabisys.com",
	"ap-northeast-1": "s3.ap-northeast-1.wasabisys.com",
	"ap-southeast-1": "s3.ap-southeast-1.wasabisys.com",
}

// PhotoStore implements domain.PhotoStorage on a bucket.
type PhotoStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewPhotoStore(ctx context.Context, cfg Config) (*PhotoStore, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	baseURL := strings.TrimRight(cfg.PublicBaseURL, "/")

	switch cfg.Provider {
	case ProviderWasabi:
		endpoint := cfg.WasabiEndpoint
		if endpoint == "" {
			endpoint = wasabiEndpoints[cfg.Region]
		}
		if endpoint == "" {
			return nil, fmt.Errorf("unknown Wasabi region: %s", cfg.Region)
		}
		// Wasabi requires path-style addressing
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String("https://" + endpoint)
			o.UsePathStyle = true
		})
		if baseURL == "" {
			baseURL = fmt.Sprintf("https://%s/%s", endpoint, cfg.Bucket)
		}
	default:
		client = s3.NewFromConfig(awsCfg)
		if baseURL == "" {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &PhotoStore{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

// PutPhoto uploads data under key and returns its public URL.
func (s *PhotoStore) PutPhoto(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

// Ping checks that the bucket is reachable.
func (s *PhotoStore) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		return fmt.Errorf("failed to access bucket %s: %w", s.bucket, err)
	}
	return nil
}
