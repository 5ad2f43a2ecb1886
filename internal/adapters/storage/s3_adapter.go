package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
	apperrors "github.com/arogyamitra/SwasthyaSahayak/backend/pkg/errors"
)

// S3Adapter stores uploaded files in an S3-compatible bucket.
type S3Adapter struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

// NewS3Adapter creates an S3-backed storage provider. A custom endpoint
// enables MinIO and other S3-compatible stores.
func NewS3Adapter(ctx context.Context, region, bucket, accessKey, secretKey, endpoint string) (providers.StorageProvider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load s3 configuration", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = &endpoint
			o.UsePathStyle = true
		}
	})

	return &S3Adapter{
		client:   client,
		bucket:   bucket,
		region:   region,
		endpoint: endpoint,
	}, nil
}

// Upload writes the file under the medical reports prefix and returns
// its public URL. Object keys are prefixed with a UUID so repeated
// uploads of the same file never collide.
func (a *S3Adapter) Upload(ctx context.Context, input providers.UploadInput) (*providers.StoredObject, error) {
	key := path.Join(providers.StorageFolder, uuid.New().String()+"-"+sanitizeFileName(input.FileName))

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &a.bucket,
		Key:    &key,
		Body:   input.Data,
	})
	if err != nil {
		return nil, apperrors.NewUploadError("file upload failed", err)
	}

	return &providers.StoredObject{
		URL:      a.objectURL(key),
		PublicID: key,
	}, nil
}

func (a *S3Adapter) objectURL(key string) string {
	if a.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(a.endpoint, "/"), a.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, key)
}

func sanitizeFileName(name string) string {
	name = path.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
