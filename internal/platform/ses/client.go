package ses

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/envutil"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

type Config struct {
	Region    string
	FromEmail string
}

func ConfigFromEnv() Config {
	return Config{
		Region:    envutil.String("AWS_REGION", "us-east-1"),
		FromEmail: envutil.String("SES_FROM_EMAIL", ""),
	}
}

// Client sends plain-text mail through Amazon SES.
type Client struct {
	log  *logger.Logger
	api  *ses.Client
	from string
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.FromEmail) == "" {
		return nil, fmt.Errorf("missing SES_FROM_EMAIL")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	return &Client{
		log:  log.With("client", "SESClient"),
		api:  ses.NewFromConfig(awsCfg),
		from: strings.TrimSpace(cfg.FromEmail),
	}, nil
}

func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	_, err := c.api.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(c.from),
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}
