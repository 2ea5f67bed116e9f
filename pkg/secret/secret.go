// Package secret resolves the UptimeRobot API key once at process start.
package secret

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	log "github.com/sirupsen/logrus"
)

var (
	ErrSecretFetch = errors.New("unable to fetch API secret from Secrets Manager")
	ErrSecretEmpty = errors.New("empty API secret returned by Secrets Manager")
)

// Source describes where the API key can come from. Value wins over SecretID.
type Source struct {
	Value    string
	SecretID string
	Region   string
}

// NewSecretsManager creates a Secrets Manager client for region.
func NewSecretsManager(region string) (secretsmanageriface.SecretsManagerAPI, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, err
	}
	return secretsmanager.New(sess), nil
}

// Resolve returns the API key. An empty result with a nil error means no
// secret is configured at all. api is only used when src.SecretID is set and
// may be nil, in which case a client is created for src.Region.
func Resolve(ctx context.Context, src Source, api secretsmanageriface.SecretsManagerAPI) (string, error) {
	if src.Value != "" {
		log.Info("Using UptimeRobot API secret from configuration.")
		return src.Value, nil
	}
	if src.SecretID == "" {
		return "", nil
	}

	if api == nil {
		var err error
		if api, err = NewSecretsManager(src.Region); err != nil {
			return "", fmt.Errorf("%w: %w", ErrSecretFetch, err)
		}
	}

	log.Infof("Fetching UptimeRobot API secret %s from Secrets Manager in %s.", src.SecretID, src.Region)
	out, err := api.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(src.SecretID),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSecretFetch, err)
	}

	var value string
	if out.SecretString != nil {
		value = *out.SecretString
	} else {
		value = string(out.SecretBinary)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrSecretEmpty, src.SecretID)
	}
	return value, nil
}
