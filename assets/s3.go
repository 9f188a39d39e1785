package assets

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// S3Client stores cover images in an S3 bucket under covers/<uuid>.
type S3Client struct {
	svc    *s3.S3
	bucket string
	region string
}

func NewS3Client(bucket, region string) (*S3Client, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, errors.Wrap(err, "error creating AWS session")
	}
	return &S3Client{
		svc:    s3.New(sess),
		bucket: bucket,
		region: region,
	}, nil
}

func (c *S3Client) Store(ctx context.Context, data []byte, contentType string) (*StoredAsset, error) {
	key := "covers/" + uuid.New().String() + extensionFor(contentType)

	_, err := c.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, errors.Wrap(err, "error uploading asset")
	}

	return &StoredAsset{
		Url: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key),
		Key: key,
	}, nil
}

func (c *S3Client) Delete(ctx context.Context, key string) error {
	_, err := c.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errors.Wrap(err, "error deleting asset")
	}
	return nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
