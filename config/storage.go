package config

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config bundles the S3 client with the meal photo bucket.
type S3Config struct {
	Client     *s3.Client
	BucketName string
}

// NewS3Config builds the S3 client from the ambient AWS configuration.
// Uploaded meal photos are publicly readable, so no presigning is involved;
// the stored object URL is served to clients as-is.
func NewS3Config(ctx context.Context) (*S3Config, error) {
	bucket := os.Getenv("S3_BUCKET_NAME")
	if bucket == "" {
		bucket = "pulseplan-meal-photos"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(os.Getenv("AWS_REGION")),
	)
	if err != nil {
		return nil, err
	}

	return &S3Config{
		Client:     s3.NewFromConfig(awsCfg),
		BucketName: bucket,
	}, nil
}
