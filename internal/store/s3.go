package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"dbu-go/internal/dbu"
)

// transferTimeout bounds the whole upload. The pipeline makes a single
// blocking call with no retry, so a hung transfer must fail on its own.
const transferTimeout = 5 * time.Minute

// S3Store ships archives to an S3 bucket using the SDK's managed uploader.
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
}

// NewS3Store builds an S3 client scoped to the given region and
// credentials. When a key pair is provided it is used as-is; otherwise the
// SDK's default chain applies. Credentials must resolve here, before any
// object operation: absent or unresolvable credentials surface as
// dbu.AuthError without touching the bucket.
func NewS3Store(ctx context.Context, bucket, region, accessKeyID, secretAccessKey string) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
		awsconfig.WithHTTPClient(&http.Client{Timeout: transferTimeout}),
	}
	if accessKeyID != "" || secretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		return nil, &dbu.AuthError{Err: err}
	}

	client := s3.NewFromConfig(cfg)
	return &S3Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
	}, nil
}

// Put uploads size bytes from r to the bucket under key. S3 PUT semantics
// make this idempotent: re-running replaces the object wholesale.
func (s *S3Store) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return s.classify(key, err)
	}
	return nil
}

// Get downloads the object at key and writes it to w.
func (s *S3Store) Get(ctx context.Context, key string, w io.Writer) error {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return s.classify(key, err)
	}
	defer out.Body.Close()

	if _, err := io.Copy(w, out.Body); err != nil {
		return &dbu.TransferError{Bucket: s.bucket, Key: key, Err: err}
	}
	return nil
}

// Validate checks that the bucket exists and the credentials can reach it.
func (s *S3Store) Validate(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return s.classify("", err)
	}
	return nil
}

// authErrorCodes are the S3 error codes that mean the credentials were
// rejected, as opposed to a transport or service failure.
var authErrorCodes = map[string]bool{
	"AccessDenied":          true,
	"InvalidAccessKeyId":    true,
	"SignatureDoesNotMatch": true,
	"ExpiredToken":          true,
	"TokenRefreshRequired":  true,
}

// classify maps an SDK error onto the pipeline's error taxonomy.
func (s *S3Store) classify(key string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && authErrorCodes[apiErr.ErrorCode()] {
		return &dbu.AuthError{Err: err}
	}
	return &dbu.TransferError{Bucket: s.bucket, Key: key, Err: err}
}

var _ dbu.ObjectStore = (*S3Store)(nil)
