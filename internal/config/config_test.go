package config

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validWorkerConfig() *Configuration {
	c := &Configuration{}
	c.Google.APIKey = "key"
	c.Google.Attempts = 2
	c.Database.URL = "postgres://localhost/interviews"
	c.RabbitMQ.URL = "amqp://localhost"
	c.RabbitMQ.Workers = 3
	c.R2.AccountID = "acc"
	c.R2.Bucket = "resumes"
	c.R2.AccessKey = "ak"
	c.R2.SecretKey = "sk"
	return c
}

func TestLoad_Defaults(t *testing.T) {
	conf, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", conf.Log.Level)
	assert.Equal(t, "gemini-2.5-pro", conf.Google.Model)
	assert.Equal(t, 2, conf.Google.Attempts)
	assert.Equal(t, "interviews", conf.RabbitMQ.Queue)
	assert.Equal(t, "interview_updates", conf.RabbitMQ.Exchange)
	assert.Equal(t, 3, conf.RabbitMQ.Workers)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "secret")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash")
	t.Setenv("WORKERS", "5")

	conf, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", conf.Google.APIKey)
	assert.Equal(t, "gemini-2.5-flash", conf.Google.Model)
	assert.Equal(t, 5, conf.RabbitMQ.Workers)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("rabbitmq:\n  queue: custom\n"), 0o600))

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", conf.RabbitMQ.Queue)
}

func TestValidateWorker(t *testing.T) {
	require.NoError(t, validWorkerConfig().ValidateWorker())

	c := validWorkerConfig()
	c.R2.Bucket = ""
	assert.EqualError(t, c.ValidateWorker(), "empty R2_BUCKET in environment")

	c = validWorkerConfig()
	c.Google.APIKey = ""
	assert.EqualError(t, c.ValidateWorker(), "empty GOOGLE_API_KEY in environment")

	c = validWorkerConfig()
	c.RabbitMQ.Workers = 0
	assert.Error(t, c.ValidateWorker())
}

func TestSetupLogger(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	c := &Configuration{}
	c.Log.Level = "debug"
	c.Log.Format = "json"
	require.NoError(t, c.SetupLogger())
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	c.Log.Level = "loud"
	assert.Error(t, c.SetupLogger())

	c.Log.Level = "info"
	c.Log.Format = "xml"
	assert.Error(t, c.SetupLogger())
}
