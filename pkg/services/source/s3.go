package source

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	"github.com/de-tools/procurement-atlas/pkg/services/ingest"
	"github.com/rs/zerolog"
)

const DefaultS3Region = "eu-central-1"

// ObjectGetter is the part of the S3 client a bucket source needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type s3Source struct {
	client        ObjectGetter
	bucket        string
	recordsKey    string
	categoriesKey string
}

func NewS3Source(client ObjectGetter, bucket, recordsKey, categoriesKey string) Source {
	return &s3Source{
		client:        client,
		bucket:        bucket,
		recordsKey:    recordsKey,
		categoriesKey: categoriesKey,
	}
}

// S3Factory expects "bucket" and "records" (an object key); "categories",
// "region" and "aws_profile" are optional.
func S3Factory(ctx context.Context, profile domain.SourceProfile) (Source, error) {
	bucket, err := requireSetting(profile, "bucket")
	if err != nil {
		return nil, err
	}
	recordsKey, err := requireSetting(profile, "records")
	if err != nil {
		return nil, err
	}

	opts := []func(*config.LoadOptions) error{
		config.WithDefaultRegion(DefaultS3Region),
	}
	if region := profile.Get("region", ""); region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if awsProfile := profile.Get("aws_profile", ""); awsProfile != "" {
		opts = append(opts, config.WithSharedConfigProfile(awsProfile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return NewS3Source(s3.NewFromConfig(awsCfg), bucket, recordsKey, profile.Get("categories", "")), nil
}

func (s *s3Source) Records(ctx context.Context) ([]domain.ProcurementRecord, error) {
	format, err := ingest.FormatFromName(s.recordsKey)
	if err != nil {
		return nil, err
	}
	out, err := s.get(ctx, s.recordsKey)
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return ingest.DecodeRecords(format, out.Body)
}

func (s *s3Source) Categories(ctx context.Context) (domain.CategoryTable, error) {
	if s.categoriesKey == "" {
		return domain.CategoryTable{}, nil
	}
	format, err := ingest.FormatFromName(s.categoriesKey)
	if err != nil {
		return nil, err
	}
	out, err := s.get(ctx, s.categoriesKey)
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return ingest.DecodeCategories(format, out.Body)
}

func (s *s3Source) get(ctx context.Context, key string) (*s3.GetObjectOutput, error) {
	zerolog.Ctx(ctx).Debug().Str("bucket", s.bucket).Str("key", key).Msg("downloading object")
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", s.bucket, key, err)
	}
	return out, nil
}

func (s *s3Source) Close() error {
	return nil
}
