// Package s3store implements bucket storage on S3 with presigned downloads.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// API is the subset of the S3 client used here.
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// Presigner defines the interface for presigning S3 downloads.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type Storage struct {
	api       API
	presigner Presigner
	prefix    string
	ttl       time.Duration
}

func New(api API, presigner Presigner, bucketPrefix string, ttl time.Duration) *Storage {
	return &Storage{api: api, presigner: presigner, prefix: bucketPrefix, ttl: ttl}
}

// Load builds a Storage from the default AWS credential chain. A non-empty
// endpoint (e.g. LocalStack) switches to path-style addressing.
func Load(ctx context.Context, region, endpoint, bucketPrefix string, ttl time.Duration) (*Storage, error) {
	cfg, err := awsCfg.LoadDefaultConfig(ctx, awsCfg.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return New(client, s3.NewPresignClient(client), bucketPrefix, ttl), nil
}

// BucketName maps a logical bucket to the physical S3 bucket.
func (s *Storage) BucketName(bucket string) string {
	if s.prefix == "" {
		return bucket
	}
	return s.prefix + "-" + bucket
}

func (s *Storage) Upload(ctx context.Context, bucket, path string, b []byte, contentType string) (string, error) {
	if len(b) == 0 {
		return "", errors.New("empty file")
	}
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.BucketName(bucket)),
		Key:                  aws.String(path),
		Body:                 bytes.NewReader(b),
		ContentType:          aws.String(contentType),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", path, err)
	}
	return path, nil
}

func (s *Storage) Remove(ctx context.Context, bucket string, paths ...string) error {
	objects := make([]types.ObjectIdentifier, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(p)})
	}
	if len(objects) == 0 {
		return nil
	}

	out, err := s.api.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.BucketName(bucket)),
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("s3 delete: %w", err)
	}
	if len(out.Errors) > 0 {
		e := out.Errors[0]
		return fmt.Errorf("s3 delete %s: %s", aws.ToString(e.Key), aws.ToString(e.Message))
	}
	return nil
}

func (s *Storage) SignedURL(ctx context.Context, bucket, path string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.BucketName(bucket)),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
