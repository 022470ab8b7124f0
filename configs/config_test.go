package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() *Config {
	return &Config{
		SF: SalesforceConfig{
			InstanceURL: "https://example.my.salesforce.com",
			APIVersion:  "v59.0",
			Timeout:     10 * time.Second,
		},
		Skill: SkillConfig{
			ServiceCenter: "Gachibowli",
		},
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		RD: RedisConfig{
			Host:         "localhost:6379",
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdentityTTL:  15 * time.Minute,
		},
		Env: "dev",
	}
}

func TestValidateConfig_AcceptsCompleteConfig(t *testing.T) {
	assert.NoError(t, validateConfig(validTestConfig()))
}

func TestValidateConfig_EmptyAppIDAllowed(t *testing.T) {
	cfg := validTestConfig()
	cfg.Skill.AppID = ""
	assert.NoError(t, validateConfig(cfg))
}

func TestValidateConfig_RejectsBadInstanceURL(t *testing.T) {
	cfg := validTestConfig()
	cfg.SF.InstanceURL = "not-a-url"
	assert.Error(t, validateConfig(cfg))

	cfg.SF.InstanceURL = ""
	assert.Error(t, validateConfig(cfg))
}

func TestValidateConfig_RejectsMissingRedisHost(t *testing.T) {
	cfg := validTestConfig()
	cfg.RD.Host = ""
	assert.Error(t, validateConfig(cfg))
}

func TestGetEnvAsString(t *testing.T) {
	assert.Equal(t, "fallback", getEnvAsString("", "fallback"))
	assert.Equal(t, "set", getEnvAsString("set", "fallback"))
}

func TestGetEnvAsDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, getEnvAsDuration("", 5*time.Second))
	assert.Equal(t, 30*time.Second, getEnvAsDuration("30s", 5*time.Second))
	assert.Equal(t, 5*time.Second, getEnvAsDuration("garbage", 5*time.Second))
}

func TestGetEnvAsInt(t *testing.T) {
	assert.Equal(t, 3, getEnvAsInt("", 3))
	assert.Equal(t, 7, getEnvAsInt("7", 3))
	assert.Equal(t, 3, getEnvAsInt("seven", 3))
}
