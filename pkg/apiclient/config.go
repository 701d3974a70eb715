package apiclient

import "time"

type Config struct {
	BaseURL       string        `env:"API_URL" envDefault:"http://localhost:8000"`
	Timeout       time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	LoginEncoding LoginEncoding `env:"API_LOGIN_ENCODING" envDefault:"json"`
}

// NewFromConfig creates a Client from cfg. Extra options are applied after
// the config values.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	configOpts := []Option{
		WithTimeout(cfg.Timeout),
		WithLoginEncoding(cfg.LoginEncoding),
	}
	return New(cfg.BaseURL, append(configOpts, opts...)...)
}
