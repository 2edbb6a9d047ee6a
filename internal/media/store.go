package media

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Store generates presigned S3 URLs for listing media. Clients upload
// directly to S3; the API never proxies image bytes.
type Store struct {
	svc    *s3.S3
	bucket string
	expiry time.Duration
}

// NewStore creates an S3-backed media store. Credentials come from the
// default AWS chain (env, shared config, instance role).
func NewStore(region, bucket string, expiry time.Duration) (*Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Store{
		svc:    s3.New(sess),
		bucket: bucket,
		expiry: expiry,
	}, nil
}

// PresignUpload returns a presigned PUT URL for the given object key.
// The signature pins the content type, so a client cannot upload a
// different media type than it declared.
func (s *Store) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	req, _ := s.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})
	req.SetContext(ctx)

	url, err := req.Presign(s.expiry)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned upload URL: %w", err)
	}
	return url, nil
}

// PresignDownload returns a presigned GET URL for the given object key.
func (s *Store) PresignDownload(ctx context.Context, key string) (string, error) {
	req, _ := s.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	req.SetContext(ctx)

	url, err := req.Presign(s.expiry)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}
	return url, nil
}
