// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/MKhiriev/go-image-keeper/internal/config"
	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/MKhiriev/go-image-keeper/models"
)

// s3API is the subset of *s3.Client used by [s3FileStorage].
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// s3FileStorage keeps images as objects of one bucket under a key prefix.
type s3FileStorage struct {
	client s3API
	bucket string
	prefix string
	logger *logger.Logger
}

// NewS3FileStorage constructs a [FileStorage] for an S3-compatible object
// store. Static credentials are used when both keys are configured; the
// default AWS credential chain is used otherwise.
func NewS3FileStorage(ctx context.Context, cfg config.S3, logger *logger.Logger) (FileStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	logger.Debug().Str("bucket", cfg.Bucket).Str("prefix", cfg.Prefix).Msg("creating s3 file storage")
	return newS3FileStorage(client, cfg.Bucket, cfg.Prefix, logger), nil
}

func newS3FileStorage(client s3API, bucket, prefix string, logger *logger.Logger) *s3FileStorage {
	return &s3FileStorage{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// Save uploads content as a single object. PutObject is atomic, so readers
// never observe a partial object.
func (s *s3FileStorage) Save(ctx context.Context, name string, content io.Reader) (models.StoredFile, error) {
	if !isPlainName(name) {
		return models.StoredFile{}, fmt.Errorf("%w: %q", ErrFileNotFound, name)
	}

	body, ok := content.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(content)
		if err != nil {
			return models.StoredFile{}, fmt.Errorf("error reading upload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	size, err := body.Seek(0, io.SeekEnd)
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("error sizing upload: %w", err)
	}
	if _, err = body.Seek(0, io.SeekStart); err != nil {
		return models.StoredFile{}, fmt.Errorf("error rewinding upload: %w", err)
	}

	contentType := contentTypeFor(name)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(name)),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3FileStorage.Save").Str("file", name).Msg("error putting object")
		return models.StoredFile{}, fmt.Errorf("error putting object: %w", err)
	}

	return models.StoredFile{
		Name:        name,
		Size:        size,
		ContentType: contentType,
		ModTime:     time.Now(),
	}, nil
}

// List pages through every object under the prefix. Keys containing a
// further "/" are skipped since names are flat.
func (s *s3FileStorage) List(ctx context.Context) ([]models.StoredFile, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	files := make([]models.StoredFile, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing objects: %w", err)
		}

		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			if !isPlainName(name) {
				continue
			}
			files = append(files, models.StoredFile{
				Name:        name,
				Size:        aws.ToInt64(obj.Size),
				ContentType: contentTypeFor(name),
				ModTime:     aws.ToTime(obj.LastModified),
			})
		}
	}

	return files, nil
}

// Open fetches the object body. A missing key yields [ErrFileNotFound].
func (s *s3FileStorage) Open(ctx context.Context, name string) (models.FileObject, error) {
	if !isPlainName(name) {
		return models.FileObject{}, ErrFileNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return models.FileObject{}, ErrFileNotFound
		}
		return models.FileObject{}, fmt.Errorf("error getting object: %w", err)
	}

	contentType := aws.ToString(out.ContentType)
	if contentType == "" {
		contentType = contentTypeFor(name)
	}

	return models.FileObject{
		StoredFile: models.StoredFile{
			Name:        name,
			Size:        aws.ToInt64(out.ContentLength),
			ContentType: contentType,
			ModTime:     aws.ToTime(out.LastModified),
		},
		Body: out.Body,
	}, nil
}

func (s *s3FileStorage) key(name string) string {
	return s.prefix + name
}

// isS3NotFound matches both the modeled NoSuchKey error and the bare 404
// some S3-compatible servers return.
func isS3NotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}

	return false
}
