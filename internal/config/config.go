package config

import (
	"fmt"
	"strings"
	"time"

	coreconfig "github.com/acksonp2c/pscbot/core/config"
	"github.com/acksonp2c/pscbot/core/database"
)

const (
	defaultDraftTTL       = 30 * time.Minute
	defaultSweepInterval  = time.Minute
	defaultServiceName    = "AcksonP2C"
	defaultSupportContact = "@A_Ackson_Backup"
)

// ExchangeConfig tunes the conversation engine and the texts it renders.
type ExchangeConfig struct {
	// DraftTTL is how long an untouched draft survives; 0 falls back to the default.
	DraftTTL      time.Duration `yaml:"draft_ttl" envconfig:"EXCHANGE_DRAFT_TTL"`
	SweepInterval time.Duration `yaml:"sweep_interval" envconfig:"EXCHANGE_SWEEP_INTERVAL"`
	// StrictAddress enables Litecoin address format checks.
	StrictAddress  bool   `yaml:"strict_address" envconfig:"EXCHANGE_STRICT_ADDRESS"`
	ServiceName    string `yaml:"service_name" envconfig:"EXCHANGE_SERVICE_NAME"`
	SupportContact string `yaml:"support_contact" envconfig:"EXCHANGE_SUPPORT_CONTACT"`
	// MaxFieldLength caps address and code length in runes; 0 disables the cap.
	MaxFieldLength int `yaml:"max_field_length" envconfig:"EXCHANGE_MAX_FIELD_LENGTH"`
}

// Config is the full bot configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database database.Config `yaml:"database"`
	Exchange ExchangeConfig  `yaml:"exchange"`
}

// CoreConfig exposes the shared core section to the runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Config
}

// Load reads path (optional) and the environment, then validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.LoadInto(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates every section and fills defaults.
func (c *Config) Normalize() error {
	if err := coreconfig.Normalize(&c.Config); err != nil {
		return err
	}
	if err := c.Database.Normalize(); err != nil {
		return err
	}

	ex := &c.Exchange
	if ex.DraftTTL < 0 {
		return fmt.Errorf("exchange.draft_ttl must be >= 0")
	}
	if ex.MaxFieldLength < 0 {
		return fmt.Errorf("exchange.max_field_length must be >= 0")
	}
	if ex.DraftTTL == 0 {
		ex.DraftTTL = defaultDraftTTL
	}
	if ex.SweepInterval <= 0 {
		ex.SweepInterval = defaultSweepInterval
	}
	if ex.SweepInterval > ex.DraftTTL {
		ex.SweepInterval = ex.DraftTTL
	}
	ex.ServiceName = strings.TrimSpace(ex.ServiceName)
	if ex.ServiceName == "" {
		ex.ServiceName = defaultServiceName
	}
	ex.SupportContact = strings.TrimSpace(ex.SupportContact)
	if ex.SupportContact == "" {
		ex.SupportContact = defaultSupportContact
	}
	return nil
}
