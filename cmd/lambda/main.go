package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	log "github.com/sirupsen/logrus"

	"github.com/Kriechi/uptimerobot-proxy/pkg/apigateway"
	"github.com/Kriechi/uptimerobot-proxy/pkg/proxy"
	"github.com/Kriechi/uptimerobot-proxy/pkg/secret"
	"github.com/Kriechi/uptimerobot-proxy/pkg/transport"
)

func main() {
	// flags are empty on Lambda, everything comes from the environment
	opts := proxy.NewOptions()
	log.SetFormatter(&log.JSONFormatter{})

	apiSecret, err := secret.Resolve(context.Background(), secret.Source{
		Value:    opts.APISecret,
		SecretID: opts.APISecretID,
		Region:   opts.Region,
	}, nil)
	if err != nil {
		log.Fatal(err)
	}
	opts.APISecret = apiSecret

	handler := proxy.NewUptimeRobotProxy(opts, transport.NewTripper(nil, nil))
	lambda.Start(apigateway.Wrap(handler))
}
