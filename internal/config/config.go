package config

import (
	"time"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	RabbitMQ  RabbitMQConfig  `mapstructure:"rabbitmq"`
	Redis     RedisConfig     `mapstructure:"redis"`
	CRM       CRMConfig       `mapstructure:"crm"`
	Mail      MailConfig      `mapstructure:"mail"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Workers   WorkersConfig   `mapstructure:"workers"`
	Lenders   []LenderConfig  `mapstructure:"lenders"`
	Forms     []FormConfig    `mapstructure:"forms"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type RabbitMQConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig is optional; without an address the rate limiter stays in process.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CRMConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type RateLimitConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

type WorkersConfig struct {
	DispatchTimeout time.Duration `mapstructure:"dispatch_timeout"`
	StaleAfter      time.Duration `mapstructure:"stale_after"`
	SweepInterval   time.Duration `mapstructure:"sweep_interval"`
}

type LenderConfig struct {
	ID       string          `mapstructure:"id"`
	Name     string          `mapstructure:"name"`
	Active   bool            `mapstructure:"active"`
	Priority int             `mapstructure:"priority"`
	Channel  ChannelConfig   `mapstructure:"channel"`
	Criteria *CriteriaConfig `mapstructure:"criteria"`
}

type ChannelConfig struct {
	Type       string `mapstructure:"type"`
	URL        string `mapstructure:"url"`
	Email      string `mapstructure:"email"`
	Endpoint   string `mapstructure:"endpoint"`
	Credential string `mapstructure:"credential"`
	Webhook    string `mapstructure:"webhook"`
}

type CriteriaConfig struct {
	MinLoanAmount  *float64 `mapstructure:"min_loan_amount"`
	MaxLoanAmount  *float64 `mapstructure:"max_loan_amount"`
	PropertyTypes  []string `mapstructure:"property_types"`
	States         []string `mapstructure:"states"`
	CreditScoreMin *int     `mapstructure:"credit_score_min"`
}

// FormConfig is a list entry rather than a map key because viper lowercases
// map keys and CRM form ids are case sensitive.
type FormConfig struct {
	ID     string        `mapstructure:"id"`
	Name   string        `mapstructure:"name"`
	Fields []FieldConfig `mapstructure:"fields"`
}

type FieldConfig struct {
	Internal string `mapstructure:"internal"`
	External string `mapstructure:"external"`
	Type     string `mapstructure:"type"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
