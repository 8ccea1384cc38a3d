package notifier

import (
	"auth-service/config"
	"auth-service/internal/util"
	"context"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"io"
)

// максимальный размер шаблона письма
const maxTemplateBytes = 256 << 10

const templatesPrefix = "templates/"

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3TemplateSource : шаблоны писем из бакета, ключ templates/<name>
type S3TemplateSource struct {
	client objectGetter
	bucket string
}

func NewS3TemplateSource(ctx context.Context, cfg config.MailConfig) (*S3TemplateSource, error) {
	var client *s3.Client

	if cfg.TemplatesLocal {
		client = s3.New(s3.Options{
			Region: cfg.TemplatesRegion,
			Credentials: credentials.NewStaticCredentialsProvider(
				"minioadmin",
				"minioadmin",
				"",
			),
			BaseEndpoint: aws.String(cfg.TemplatesEndpoint),
			UsePathStyle: true,
		})
	} else {
		awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(cfg.TemplatesRegion))
		if err != nil {
			return nil, util.LogError("[S3Templates] ошибка загрузки AWS config", err)
		}
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.TemplatesEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.TemplatesEndpoint)
			}
		})
	}

	return newS3TemplateSource(client, cfg.TemplatesBucket), nil
}

func newS3TemplateSource(client objectGetter, bucket string) *S3TemplateSource {
	return &S3TemplateSource{client: client, bucket: bucket}
}

func (s *S3TemplateSource) Load(ctx context.Context, name string) (string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(templatesPrefix + name),
	})
	if err != nil {
		return "", fmt.Errorf("[S3Templates] не удалось получить шаблон %s: %w", name, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxTemplateBytes+1))
	if err != nil {
		return "", fmt.Errorf("[S3Templates] ошибка чтения шаблона %s: %w", name, err)
	}
	if len(data) > maxTemplateBytes {
		return "", fmt.Errorf("[S3Templates] шаблон %s больше %d байт", name, maxTemplateBytes)
	}

	return string(data), nil
}
