package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"reelcut/config"
)

// RenderUploader pushes finished exports to S3. It is optional end to end:
// a nil uploader is valid and Upload on it is skipped by callers.
type RenderUploader struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewRenderUploader builds an uploader from runtime config, or returns nil
// when no bucket is configured. Credential problems disable uploads with a
// warning rather than failing startup.
func NewRenderUploader(ctx context.Context, cfg config.Config) *RenderUploader {
	if cfg.S3Bucket == "" {
		return nil
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.S3Region))
	}
	if cfg.S3Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.S3Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Printf("Warning: failed to init S3 client: %v (render uploads disabled)", err)
		return nil
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3UsePathStyle
	})
	return &RenderUploader{client: client, bucket: cfg.S3Bucket, prefix: cfg.S3Prefix}
}

// Upload stores the render under <prefix>renders/<name> and returns the key.
func (u *RenderUploader) Upload(ctx context.Context, name string, data []byte) (string, error) {
	key := u.prefix + "renders/" + name
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("video/mp4"),
	})
	if err != nil {
		return "", fmt.Errorf("upload render %q: %w", key, err)
	}
	return key, nil
}

// Exists reports whether a render key is already present.
func (u *RenderUploader) Exists(ctx context.Context, key string) (bool, error) {
	_, err := u.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return false, nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return false, nil
	}
	return false, err
}
