package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	zlog "github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/baechuer/vidshare/internal/metrics"
)

type Options struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	// PublicBaseURL is the prefix media references are served from, e.g. a CDN origin.
	PublicBaseURL string
}

type objectDeleter interface {
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3AssetStore deletes media objects referenced by videos, tweets and profiles.
// Calls go through a circuit breaker so an unavailable bucket fails fast.
type S3AssetStore struct {
	client        objectDeleter
	bucket        string
	publicBaseURL string
	cb            *gobreaker.CircuitBreaker[struct{}]
}

// NewS3AssetStore works against AWS, MinIO or R2. A custom endpoint is used as-is.
func NewS3AssetStore(ctx context.Context, o Options) (*S3AssetStore, error) {
	if o.Bucket == "" {
		return nil, errors.New("missing S3 bucket")
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(o.Region)}
	if o.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretAccessKey, ""),
		))
	}
	if o.Endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{URL: o.Endpoint, HostnameImmutable: true}, nil
		})
		loadOpts = append(loadOpts, config.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(so *s3.Options) {
		so.UsePathStyle = o.UsePathStyle
	})
	return newS3AssetStore(client, o.Bucket, o.PublicBaseURL), nil
}

func newS3AssetStore(client objectDeleter, bucket, publicBaseURL string) *S3AssetStore {
	settings := gobreaker.Settings{
		Name:        "s3-assets",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			zlog.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("asset store breaker state change")
		},
	}
	return &S3AssetStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		cb:            gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

// DeleteAsset removes the object behind ref. S3 deletes are idempotent, so a missing
// object is not an error. A reference that does not resolve to a key in this bucket
// has nothing to delete here and is skipped.
func (s *S3AssetStore) DeleteAsset(ctx context.Context, ref string) error {
	key, err := s.KeyFor(ref)
	if err != nil {
		metrics.AssetDeletesTotal.WithLabelValues("skipped").Inc()
		zlog.Warn().Err(err).Str("bucket", s.bucket).Msg("asset reference outside store, skipping delete")
		return nil
	}

	_, err = s.cb.Execute(func() (struct{}, error) {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		return struct{}{}, err
	})
	if err != nil {
		metrics.AssetDeletesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	metrics.AssetDeletesTotal.WithLabelValues("ok").Inc()
	return nil
}

// KeyFor maps a stored media reference to an object key. Accepted forms are
// public URLs under PublicBaseURL, s3://bucket/key, path-style URLs and bare keys.
func (s *S3AssetStore) KeyFor(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("empty asset reference")
	}

	if s.publicBaseURL != "" && strings.HasPrefix(ref, s.publicBaseURL+"/") {
		return nonEmptyKey(strings.TrimPrefix(ref, s.publicBaseURL+"/"), ref)
	}

	if !strings.Contains(ref, "://") {
		return nonEmptyKey(strings.TrimLeft(ref, "/"), ref)
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid asset reference %q: %w", ref, err)
	}
	switch u.Scheme {
	case "s3":
		if u.Host != s.bucket {
			return "", fmt.Errorf("asset %q is not in bucket %s", ref, s.bucket)
		}
		return nonEmptyKey(strings.TrimLeft(u.Path, "/"), ref)
	case "http", "https":
		key := strings.TrimLeft(u.Path, "/")
		key = strings.TrimPrefix(key, s.bucket+"/")
		return nonEmptyKey(key, ref)
	default:
		return "", fmt.Errorf("unsupported asset reference scheme %q", u.Scheme)
	}
}

func nonEmptyKey(key, ref string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("asset reference %q has no object key", ref)
	}
	return key, nil
}

// NoopAssetStore is used when no bucket is configured.
type NoopAssetStore struct{}

func (NoopAssetStore) DeleteAsset(ctx context.Context, ref string) error { return nil }
