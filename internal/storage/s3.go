// Package storage publishes exported menu artifacts to S3 compatible object storage
// such as AWS S3 or Cloudflare R2.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// SetLogLevel adjusts the verbosity of the publisher logger
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

// Publisher stores an object and returns the URL it is publicly reachable at
type Publisher interface {
	Publish(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// Options configures the S3 publisher
type Options struct {
	Bucket        string
	Region        string
	Endpoint      string // custom endpoint, required for R2
	AccessKey     string
	SecretKey     string
	PublicBaseURL string // base of the returned URLs, defaults to the bucket URL
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads objects with PutObject
type S3Publisher struct {
	client  putObjectAPI
	bucket  string
	baseURL string
}

// NewS3Publisher creates a publisher from opts. Static credentials are used when an access key is
// given, otherwise the default AWS credential chain applies.
func NewS3Publisher(ctx context.Context, opts Options) (*S3Publisher, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("export bucket is required")
	}
	region := opts.Region
	if region == "" {
		region = "auto"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	log.WithFields(logrus.Fields{
		"bucket":   opts.Bucket,
		"region":   region,
		"endpoint": opts.Endpoint,
	}).Info("Export storage configured")

	return newS3Publisher(client, opts.Bucket, publicBaseURL(opts, region)), nil
}

func newS3Publisher(client putObjectAPI, bucket, baseURL string) *S3Publisher {
	return &S3Publisher{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// publicBaseURL resolves where uploaded objects can be fetched from
func publicBaseURL(opts Options, region string) string {
	switch {
	case opts.PublicBaseURL != "":
		return opts.PublicBaseURL
	case opts.Endpoint != "":
		return strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, region)
	}
}

// Publish uploads body under key and returns its public URL
func (p *S3Publisher) Publish(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	url := fmt.Sprintf("%s/%s", p.baseURL, key)
	log.WithFields(logrus.Fields{
		"key":   key,
		"bytes": len(body),
		"url":   url,
	}).Info("Export published")
	return url, nil
}

// MenuKey returns the object key of an owner's exported artifact
func MenuKey(userID, filename string) string {
	return path.Join("menus", userID, filename)
}
