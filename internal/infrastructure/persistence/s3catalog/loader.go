// Package s3catalog loads catalog documents from S3 objects
package s3catalog

import (
	"context"
	"fmt"

	"github.com/alchemorsel/composer/internal/infrastructure/persistence/catalogfile"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"go.uber.org/zap"
)

// Config locates the catalog object
type Config struct {
	Bucket   string
	Key      string
	Region   string
	Endpoint string
}

// NewClient creates an S3 client. A custom endpoint switches to path-style
// addressing for S3-compatible stores.
func NewClient(cfg Config) (s3iface.S3API, error) {
	awsConfig := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return s3.New(sess), nil
}

// Loader returns a catalog loader reading s3://bucket/key on every call
func Loader(client s3iface.S3API, cfg Config, logger *zap.Logger) catalogfile.Loader {
	log := logger.Named("s3-catalog")
	return func(ctx context.Context) (*catalogfile.Document, error) {
		out, err := client.GetObjectWithContext(ctx, &s3.GetObjectInput{
			Bucket: aws.String(cfg.Bucket),
			Key:    aws.String(cfg.Key),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch s3://%s/%s: %w", cfg.Bucket, cfg.Key, err)
		}
		defer out.Body.Close()

		doc, err := catalogfile.Decode(out.Body)
		if err != nil {
			return nil, err
		}

		log.Info("Catalog fetched from S3",
			zap.String("bucket", cfg.Bucket),
			zap.String("key", cfg.Key),
			zap.String("etag", aws.StringValue(out.ETag)),
			zap.Int("ingredients", len(doc.Ingredients)),
		)
		return doc, nil
	}
}
