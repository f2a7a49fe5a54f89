package inbox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by S3Sink.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink writes each inquiry to <prefix>/<yyyy-mm-dd>/<id>.json.
type S3Sink struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Sink creates an S3Sink.
func NewS3Sink(client S3API, bucket, prefix string) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// Key returns the object key used for inq.
func (s *S3Sink) Key(inq *Inquiry) string {
	name := path.Join(inq.SubmittedAt.UTC().Format("2006-01-02"), inq.ID+".json")
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// Deliver implements Sink.
func (s *S3Sink) Deliver(ctx context.Context, inq *Inquiry) error {
	if err := validate(inq); err != nil {
		return err
	}
	body, err := json.Marshal(inq)
	if err != nil {
		return Permanent(err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.Key(inq)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"inquiry-id": inq.ID,
			"subject":    inq.Subject,
		},
	})
	if err != nil {
		return fmt.Errorf("inbox: s3 put: %w", err)
	}
	return nil
}

// S3ClientOptions configures NewS3Client.
type S3ClientOptions struct {
	Region   string
	Endpoint string
	// PathStyle is needed by most S3-compatible servers such as MinIO.
	PathStyle bool
	// Static credentials. When empty, AWS_ACCESS_KEY_ID,
	// AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN are read at signing time.
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Client builds an S3 client from explicit options.
func NewS3Client(opts S3ClientOptions) *s3.Client {
	o := s3.Options{
		Region:       opts.Region,
		UsePathStyle: opts.PathStyle,
		Credentials:  aws.NewCredentialsCache(credentialsFrom(opts)),
	}
	if opts.Endpoint != "" {
		o.BaseEndpoint = aws.String(opts.Endpoint)
	}
	return s3.New(o)
}

func credentialsFrom(opts S3ClientOptions) aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		creds := aws.Credentials{
			AccessKeyID:     opts.AccessKeyID,
			SecretAccessKey: opts.SecretAccessKey,
			Source:          "techcorp-config",
		}
		if creds.AccessKeyID == "" {
			creds = aws.Credentials{
				AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
				SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
				Source:          "environment",
			}
		}
		if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
			return aws.Credentials{}, errors.New("inbox: no s3 credentials configured")
		}
		return creds, nil
	})
}
