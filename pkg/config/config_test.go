package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "http://localhost:5005", cfg.NLU.ServerURL)
	assert.Equal(t, 5*time.Second, cfg.NLU.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Chatbot.LookupTimeout)
	assert.True(t, cfg.Redis.Enabled)
	assert.Len(t, cfg.CORS.AllowedOrigins, 4)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("RASA_SERVER_URL", "http://nlu:5005/")
	v.Set("NLU_TIMEOUT", "bogus")
	v.Set("CHATBOT_LOOKUP_TIMEOUT", "2s")
	v.Set("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := fromViper(v)

	assert.Equal(t, "http://nlu:5005", cfg.NLU.ServerURL)
	assert.Equal(t, 5*time.Second, cfg.NLU.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Chatbot.LookupTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}
