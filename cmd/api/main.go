package main

import (
	"fmt"
	"strconv"
	"time"

	"course-admin-go/internal/notifications"
	"course-admin-go/internal/remote"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sendgrid/sendgrid-go"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.Println("starting course admin server")

	cfg, err := ReadConfig()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("parsing log level: %v", err)
	}
	log.SetLevel(level)

	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		log.Fatalf("converting port to integer: %v", err)
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("loading timezone: %v", err)
	}

	nr, err := newRelicApp(cfg)
	if err != nil {
		log.Fatalf("creating new relic application: %v", err)
	}

	var ops notifications.Notifier
	if cfg.SendgridKey != "" && cfg.OpsEmail != "" {
		ops = notifications.NewSender(sendgrid.NewSendClient(cfg.SendgridKey), cfg.OpsEmail)
	}

	client := remote.NewClient(cfg.RemoteURL, cfg.RemoteTimeout)
	remoteFor := func(token string) remote.Requester {
		return client.Authenticated(token)
	}

	server := NewServer(port, cfg.JWTKey, remoteFor, location, ops, nr)

	log.Fatal(server.Run())
}

func newRelicApp(cfg *Config) (*newrelic.Application, error) {
	if cfg.NewRelicLicense == "" {
		log.Println("new relic license not set, instrumentation disabled")
		return nil, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.NewRelicApp),
		newrelic.ConfigLicense(cfg.NewRelicLicense),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		return nil, fmt.Errorf("configuring agent: %w", err)
	}

	return app, nil
}
