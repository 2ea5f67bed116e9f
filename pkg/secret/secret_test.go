package secret

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/stretchr/testify/assert"
)

type fakeSecretsManager struct {
	secretsmanageriface.SecretsManagerAPI

	out   *secretsmanager.GetSecretValueOutput
	err   error
	calls []string
}

func (f *fakeSecretsManager) GetSecretValueWithContext(_ aws.Context, in *secretsmanager.GetSecretValueInput, _ ...request.Option) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls = append(f.calls, aws.StringValue(in.SecretId))
	return f.out, f.err
}

func TestResolvePrefersConfiguredValue(t *testing.T) {
	api := &fakeSecretsManager{out: &secretsmanager.GetSecretValueOutput{SecretString: aws.String("from-aws")}}
	s, err := Resolve(context.Background(), Source{Value: "abc", SecretID: "uptimerobot"}, api)
	assert.NoError(t, err)
	assert.Equal(t, "abc", s)
	assert.Empty(t, api.calls)
}

func TestResolveNothingConfigured(t *testing.T) {
	s, err := Resolve(context.Background(), Source{}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestResolveFromSecretString(t *testing.T) {
	api := &fakeSecretsManager{out: &secretsmanager.GetSecretValueOutput{SecretString: aws.String(" u123-key\n")}}
	s, err := Resolve(context.Background(), Source{SecretID: "prod/uptimerobot", Region: "eu-test-1"}, api)
	assert.NoError(t, err)
	assert.Equal(t, "u123-key", s)
	assert.Equal(t, []string{"prod/uptimerobot"}, api.calls)
}

func TestResolveFromSecretBinary(t *testing.T) {
	api := &fakeSecretsManager{out: &secretsmanager.GetSecretValueOutput{SecretBinary: []byte("binkey")}}
	s, err := Resolve(context.Background(), Source{SecretID: "prod/uptimerobot"}, api)
	assert.NoError(t, err)
	assert.Equal(t, "binkey", s)
}

func TestResolveFetchError(t *testing.T) {
	api := &fakeSecretsManager{err: errors.New("AccessDeniedException")}
	_, err := Resolve(context.Background(), Source{SecretID: "prod/uptimerobot"}, api)
	assert.ErrorIs(t, err, ErrSecretFetch)
	assert.Contains(t, err.Error(), "AccessDeniedException")
}

func TestResolveEmptySecret(t *testing.T) {
	api := &fakeSecretsManager{out: &secretsmanager.GetSecretValueOutput{SecretString: aws.String("   ")}}
	_, err := Resolve(context.Background(), Source{SecretID: "prod/uptimerobot"}, api)
	assert.ErrorIs(t, err, ErrSecretEmpty)
}
