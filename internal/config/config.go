// Package config loads settings from config.yml and the environment.
package config

import (
	"github.com/gotify/configor"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Configuration struct {
	Log struct {
		Level  string `default:"info" env:"LOG_LEVEL"`
		Format string `default:"text" env:"LOG_FORMAT"`
	}
	Google struct {
		APIKey   string `default:"" env:"GOOGLE_API_KEY"`
		Model    string `default:"gemini-2.5-pro" env:"GEMINI_MODEL"`
		Attempts int    `default:"2" env:"LLM_ATTEMPTS"`
	}
	Extract struct {
		Repair bool `env:"EXTRACT_REPAIR"`
	}
	Database struct {
		URL string `default:"" env:"DB_URL"`
	}
	RabbitMQ struct {
		URL      string `default:"" env:"RABBITMQ_URL"`
		Queue    string `default:"interviews" env:"RABBITMQ_QUEUE"`
		Exchange string `default:"interview_updates" env:"RABBITMQ_EXCHANGE"`
		Workers  int    `default:"3" env:"WORKERS"`
	}
	R2 struct {
		AccountID string `default:"" env:"R2_ACCOUNT_ID"`
		Bucket    string `default:"" env:"R2_BUCKET"`
		AccessKey string `default:"" env:"R2_ACCESS_KEY"`
		SecretKey string `default:"" env:"R2_SECRET_KEY"`
	}
}

// DefaultFiles are read when present; environment variables win over them.
func DefaultFiles() []string {
	return []string{"config.yml"}
}

func Load(files ...string) (*Configuration, error) {
	conf := new(Configuration)
	if err := configor.New(&configor.Config{}).Load(conf, files...); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return conf, nil
}

// ValidateLLM checks the settings needed to call the model.
func (c *Configuration) ValidateLLM() error {
	if c.Google.APIKey == "" {
		return errors.New("empty GOOGLE_API_KEY in environment")
	}
	if c.Google.Attempts < 1 {
		return errors.New("LLM_ATTEMPTS must be at least 1")
	}
	return nil
}

// ValidateWorker checks the settings needed by the queue worker.
func (c *Configuration) ValidateWorker() error {
	if err := c.ValidateLLM(); err != nil {
		return err
	}
	required := []struct {
		name  string
		value string
	}{
		{"DB_URL", c.Database.URL},
		{"RABBITMQ_URL", c.RabbitMQ.URL},
		{"R2_ACCOUNT_ID", c.R2.AccountID},
		{"R2_BUCKET", c.R2.Bucket},
		{"R2_ACCESS_KEY", c.R2.AccessKey},
		{"R2_SECRET_KEY", c.R2.SecretKey},
	}
	for _, r := range required {
		if r.value == "" {
			return errors.Errorf("empty %s in environment", r.name)
		}
	}
	if c.RabbitMQ.Workers < 1 {
		return errors.New("WORKERS must be at least 1")
	}
	return nil
}

// SetupLogger applies the log level and format to the standard logrus logger.
func (c *Configuration) SetupLogger() error {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return errors.Wrap(err, "invalid LOG_LEVEL")
	}
	log.SetLevel(level)

	switch c.Log.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return errors.Errorf("invalid LOG_FORMAT %q", c.Log.Format)
	}
	return nil
}
