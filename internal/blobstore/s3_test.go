package blobstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3StoreDelete(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origDelete := deleteObject
	defer func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		deleteObject = origDelete
	}()

	opts := S3Options{
		AccessKey:    "admin",
		SecretKey:    "secretpassword",
		Bucket:       "uploads",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000/",
	}

	t.Run("deletes the object", func(t *testing.T) {
		var gotBucket, gotKey string
		deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
			gotBucket = aws.ToString(in.Bucket)
			gotKey = aws.ToString(in.Key)
			return &s3.DeleteObjectOutput{}, nil
		}

		s := NewS3Store(opts)
		err := s.Delete(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, "uploads", gotBucket)
		assert.Equal(t, "abc123", gotKey)
	})

	t.Run("config load failure", func(t *testing.T) {
		loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
			return aws.Config{}, errors.New("no config")
		}

		s := NewS3Store(opts)
		err := s.Delete(context.Background(), "abc123")
		require.Error(t, err)
		loadDefaultAWSConfig = origLoad
	})

	t.Run("delete failure", func(t *testing.T) {
		wantErr := errors.New("access denied")
		deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
			return nil, wantErr
		}

		s := NewS3Store(opts)
		err := s.Delete(context.Background(), "abc123")
		require.ErrorIs(t, err, wantErr)
	})
}
