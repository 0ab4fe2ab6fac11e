package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/flagx"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Interval fields use timex.Duration, which accepts both string values
// such as "15m" and integer nanoseconds. After unmarshalling, fields are
// copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr                 string         `json:"endpoint_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SessionStore                 string         `json:"session_store"`
	RedisAddr                    string         `json:"redis_addr"`
	AccessSecretKey              string         `json:"access_secret_key"`
	RefreshSecretKey             string         `json:"refresh_secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SessionStore = c.SessionStore
	config.RedisAddr = c.RedisAddr
	config.AccessSecretKey = c.AccessSecretKey
	config.RefreshSecretKey = c.RefreshSecretKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenValidityDuration.Duration)
}
