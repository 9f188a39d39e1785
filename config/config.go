package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config struct {
	Port  string `env:"PORT" envDefault:"8088"`
	GoEnv string `env:"GOENV" envDefault:"development"`

	MongoUri string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDb  string `env:"MONGODB_DB" envDefault:"inkwell"`

	// TokenSecret signs session tokens. Rotating it invalidates all
	// outstanding sessions.
	TokenSecret string `env:"SESSION_SECRET,required"`

	AssetsBucket string `env:"ASSETS_BUCKET"`
	AwsRegion    string `env:"AWS_REGION" envDefault:"us-east-1"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "error parsing environment")
	}
	return &cfg, nil
}
