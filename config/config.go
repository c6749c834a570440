package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Gemini   Gemini
	Supabase Supabase
	Auth     Auth
}

type Server struct {
	Port      string
	ClientURL string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Gemini struct {
	APIKey          string
	GenerateTimeout time.Duration
}

type Supabase struct {
	URL string
	Key string
}

type Auth struct {
	JWTSecret string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetDefault("GEMINI_GENERATE_TIMEOUT", "30s")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.ClientURL = viper.GetString("CLIENT_URL")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Gemini.APIKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.GenerateTimeout = viper.GetDuration("GEMINI_GENERATE_TIMEOUT")

	config.Supabase.URL = viper.GetString("SUPABASE_URL")
	config.Supabase.Key = viper.GetString("SUPABASE_KEY")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")

	if missing := missingKeys(&config); len(missing) > 0 {
		return nil, fmt.Errorf("missing required config keys: %s", strings.Join(missing, ", "))
	}

	log.Info().Str("port", config.Server.Port).Str("database", config.Database.Name).Msg("Config loaded")
	return &config, nil
}

func missingKeys(c *Config) []string {
	required := map[string]string{
		"SERVER_PORT":       c.Server.Port,
		"CLIENT_URL":        c.Server.ClientURL,
		"DATABASE_HOST":     c.Database.Host,
		"DATABASE_PORT":     c.Database.Port,
		"DATABASE_USER":     c.Database.User,
		"DATABASE_PASSWORD": c.Database.Password,
		"DATABASE_NAME":     c.Database.Name,
		"GEMINI_API_KEY":    c.Gemini.APIKey,
		"SUPABASE_URL":      c.Supabase.URL,
		"SUPABASE_KEY":      c.Supabase.Key,
		"JWT_SECRET":        c.Auth.JWTSecret,
	}

	var missing []string
	for key, val := range required {
		if val == "" {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
