package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
)

type Config struct {
	Port            string        `conf:"default:8080,env:PORT"`
	JWTKey          string        `conf:"default:your_secret_key,env:JWT_KEY,noprint"`
	RemoteURL       string        `conf:"default:http://localhost:4000/graphql,env:REMOTE_URL"`
	RemoteTimeout   time.Duration `conf:"default:10s,env:REMOTE_TIMEOUT"`
	Timezone        string        `conf:"default:America/Sao_Paulo,env:TIMEZONE"`
	LogLevel        string        `conf:"default:info,env:LOG_LEVEL"`
	NewRelicApp     string        `conf:"default:course-admin,env:NEW_RELIC_APP"`
	NewRelicLicense string        `conf:"env:NEW_RELIC_LICENSE,noprint"`
	SendgridKey     string        `conf:"env:SENDGRID_KEY,noprint"`
	OpsEmail        string        `conf:"env:OPS_EMAIL"`
}

func ReadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	help, err := conf.ParseOSArgs("APP", &cfg)

	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}
