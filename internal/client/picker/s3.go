package picker

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/jobintake/internal/client/models"
)

// S3Config selects the bucket endpoint. Empty keys fall back to the default
// AWS credential chain; an empty endpoint means AWS itself.
type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// objectAPI is the part of *s3.Client the picker needs.
type objectAPI interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

const defaultDownloadTimeout = 2 * time.Minute

// S3Picker resolves s3://bucket/key references. Object metadata is read on
// Pick; the content is downloaded each time the resume is opened.
type S3Picker struct {
	api             objectAPI
	downloadTimeout time.Duration
}

func NewS3Picker(ctx context.Context, cfg S3Config) (*S3Picker, error) {
	opts := []func(*config.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	api := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Picker{api: api, downloadTimeout: defaultDownloadTimeout}, nil
}

func (p *S3Picker) Pick(ctx context.Context, ref string) (*models.ResumeFile, error) {
	bucket, key, err := parseS3URI(ref)
	if err != nil {
		return nil, err
	}

	head, err := p.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("head %s: %w", ref, err)
	}

	return &models.ResumeFile{
		Name:     path.Base(key),
		MIMEType: aws.ToString(head.ContentType),
		Size:     aws.ToInt64(head.ContentLength),
		Source:   ref,
		Open: func() (io.ReadCloser, error) {
			return p.open(bucket, key)
		},
	}, nil
}

func (p *S3Picker) open(bucket, key string) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.downloadTimeout)
	out, err := p.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	return &cancelOnClose{ReadCloser: out.Body, cancel: cancel}, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}

func parseS3URI(ref string) (string, string, error) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil || !strings.EqualFold(u.Scheme, "s3") {
		return "", "", ErrInvalidS3URI
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", ErrInvalidS3URI
	}
	return u.Host, key, nil
}
