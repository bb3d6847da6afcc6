package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"moviesearch/errs"
)

// API is the subset of *s3.Client used by Bucket.
type API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// Bucket reads and writes objects of a single bucket.
type Bucket struct {
	client API
	name   string
}

func NewBucket(client API, name string) *Bucket {
	return &Bucket{
		client: client,
		name:   name,
	}
}

func (b *Bucket) Name() string {
	return b.name
}

// Keys lists every object key in the order the server returns them.
func (b *Bucket) Keys(ctx context.Context) ([]string, error) {
	var keys []string

	paginator := s3.NewListObjectsV2Paginator(b.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.name),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			var nsb *types.NoSuchBucket
			if errors.As(err, &nsb) {
				return nil, errs.Errorf(errs.ENOTFOUND, "bucket %q not found", b.name)
			}
			return nil, fmt.Errorf("s3: list objects in %q: %w", b.name, err)
		}

		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}

	return keys, nil
}

// Get opens the object body. The caller closes it.
func (b *Bucket) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, errs.Errorf(errs.ENOTFOUND, "object %q not found", key)
		}
		return nil, fmt.Errorf("s3: get object %q: %w", key, err)
	}

	return out.Body, nil
}

func (b *Bucket) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := b.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3: put object %q: %w", key, err)
	}

	return nil
}

// EnsureBucket creates the bucket in region unless the caller already owns it.
func (b *Bucket) EnsureBucket(ctx context.Context, region string) error {
	input := &s3.CreateBucketInput{
		Bucket: aws.String(b.name),
	}
	// us-east-1 rejects an explicit location constraint.
	if region != "" && region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}

	_, err := b.client.CreateBucket(ctx, input)
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		var exists *types.BucketAlreadyExists
		if errors.As(err, &exists) {
			return errs.Errorf(errs.ECONFLICT, "bucket %q belongs to another account", b.name)
		}
		return fmt.Errorf("s3: create bucket %q: %w", b.name, err)
	}

	return nil
}
