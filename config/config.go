package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port string

	DatabaseURL      string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	DBMaxConns       int32

	RedisAddr string
	CacheTTL  time.Duration

	LLMProvider string
	APIKey      string
	LLMModel    string

	StatsToken  string
	CORSOrigins []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", ":8080")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("CORS_ORIGINS", "*")
}

// Load reads the given .env files (missing files only produce a warning)
// and then the process environment.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			log.Printf("Warning: Error loading %s file: %v", f, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	port := v.GetString("PORT")
	// accept a bare port number as well as a listen address
	if port != "" && !strings.Contains(port, ":") {
		port = ":" + port
	}

	ttl := v.GetDuration("CACHE_TTL")
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	var origins []string
	for _, o := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Port:             port,
		DatabaseURL:      v.GetString("DATABASE_URL"),
		PostgresHost:     v.GetString("POSTGRES_HOST"),
		PostgresPort:     v.GetString("POSTGRES_PORT"),
		PostgresUser:     v.GetString("POSTGRES_USER"),
		PostgresPassword: v.GetString("POSTGRES_PASSWORD"),
		PostgresDB:       v.GetString("POSTGRES_DB"),
		DBMaxConns:       v.GetInt32("DB_MAX_CONNS"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		CacheTTL:         ttl,
		LLMProvider:      strings.ToLower(v.GetString("LLM_PROVIDER")),
		APIKey:           v.GetString("API_KEY"),
		LLMModel:         v.GetString("LLM_MODEL"),
		StatsToken:       v.GetString("STATS_TOKEN"),
		CORSOrigins:      origins,
	}
}
