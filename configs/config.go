package configs

import (
	"flag"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sunnykeerthi/service-center-user/configs/loader"
)

type SalesforceConfig struct {
	InstanceURL string        `validate:"required,url"`
	APIVersion  string        `validate:"required"`
	Timeout     time.Duration `validate:"required"`
}

type SkillConfig struct {
	// AppID empty disables the application-id check (development only).
	AppID         string
	ServiceCenter string `validate:"required"`
}

type HTTPConfig struct {
	Addr         string        `validate:"required"`
	ReadTimeout  time.Duration `validate:"required"`
	WriteTimeout time.Duration `validate:"required"`
}

type RedisConfig struct {
	Host         string `validate:"required"`
	DB           int    `validate:"min=0"`
	User         string
	Password     string
	MaxRetries   int           `validate:"min=0"`
	DialTimeout  time.Duration `validate:"required"`
	ReadTimeout  time.Duration `validate:"required"`
	WriteTimeout time.Duration `validate:"required"`
	IdentityTTL  time.Duration `validate:"required"`
}

type Config struct {
	SF    SalesforceConfig
	Skill SkillConfig
	HTTP  HTTPConfig
	RD    RedisConfig
	Env   string
}

func MustLoad(loader loader.ConfigLoader) *Config {
	env := flag.String("env", "dev", "Environment type")
	flag.Parse()

	const op = "configs.MustLoad"
	envs, err := loader.Load()
	if err != nil {
		log.Fatalf("%s: config load failed: %+v", op, err)
	}
	cfg := &Config{
		SF: SalesforceConfig{
			InstanceURL: envs["SF_INSTANCE_URL"],
			APIVersion:  getEnvAsString(envs["SF_API_VERSION"], "v59.0"),
			Timeout:     getEnvAsDuration(envs["SF_TIMEOUT"], 10*time.Second),
		},
		Skill: SkillConfig{
			AppID:         envs["SKILL_APP_ID"],
			ServiceCenter: getEnvAsString(envs["SERVICE_CENTER_LOCATION"], "Gachibowli"),
		},
		HTTP: HTTPConfig{
			Addr:         getEnvAsString(envs["HTTP_ADDR"], ":8080"),
			ReadTimeout:  getEnvAsDuration(envs["HTTP_READ_TIMEOUT"], 10*time.Second),
			WriteTimeout: getEnvAsDuration(envs["HTTP_WRITE_TIMEOUT"], 15*time.Second),
		},
		RD: RedisConfig{
			Host:         getEnvAsString(envs["REDIS_HOST"], "localhost:6379"),
			DB:           getEnvAsInt(envs["REDIS_DB"], 0),
			User:         envs["REDIS_USER"],
			Password:     envs["REDIS_PASSWORD"],
			MaxRetries:   getEnvAsInt(envs["REDIS_MAX_RETRIES"], 3),
			DialTimeout:  getEnvAsDuration(envs["REDIS_DIAL_TIMEOUT"], 5*time.Second),
			ReadTimeout:  getEnvAsDuration(envs["REDIS_READ_TIMEOUT"], 5*time.Second),
			WriteTimeout: getEnvAsDuration(envs["REDIS_WRITE_TIMEOUT"], 5*time.Second),
			IdentityTTL:  getEnvAsDuration(envs["REDIS_IDENTITY_TTL"], 15*time.Minute),
		},
		Env: *env,
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("%s: config validation failed: %+v", op, err)
	}

	return cfg
}

func validateConfig(cfg *Config) error {
	return validator.New().Struct(cfg)
}

func getEnvAsString(strValue string, defaultValue string) string {
	if strValue == "" {
		return defaultValue
	}
	return strValue
}

func getEnvAsDuration(strValue string, defaultValue time.Duration) time.Duration {
	const op = "configs.getEnvAsDuration"
	if strValue == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("%s:Invalid value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsInt(strValue string, defaultValue int) int {
	const op = "configs.getEnvAsInt"
	if strValue == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("%s:Invalid value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}
