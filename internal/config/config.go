package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Addr            string        `env:"ADDR" envDefault:":4000"`
	Store           string        `env:"STORE" envDefault:"mongo"` // mongo or memory
	MongoURI        string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB         string        `env:"MONGO_DB" envDefault:"medicart"`
	SessionLifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"12h"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"12"`
	UploadDir       string        `env:"UPLOAD_DIR" envDefault:"./uploads"`
	LowStock        int           `env:"LOW_STOCK_THRESHOLD" envDefault:"10"`

	Gateway GatewayConfig
}

// GatewayConfig configures the external payment collaborator. KeySecret signs
// the callback verification HMAC.
type GatewayConfig struct {
	BaseURL   string `env:"GATEWAY_URL" envDefault:"https://api.razorpay.com/v1"`
	KeyID     string `env:"GATEWAY_KEY_ID" envDefault:""`
	KeySecret string `env:"GATEWAY_KEY_SECRET" envDefault:""`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
