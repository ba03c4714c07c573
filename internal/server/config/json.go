package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/evetodo/eve-server/internal/flagx"
	"github.com/evetodo/eve-server/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "12h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	MaxDBConnections            int            `json:"max_db_connections"`
	SessionCookieName           string         `json:"session_cookie_name"`
	SessionLifetime             timex.Duration `json:"session_lifetime"`
	SessionRefreshWindow        timex.Duration `json:"session_refresh_window"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no JSON file is loaded. Unset JSON fields keep
// the values already present in config. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
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

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.MaxDBConnections != 0 {
		config.MaxDBConnections = c.MaxDBConnections
	}
	if c.SessionCookieName != "" {
		config.SessionCookieName = c.SessionCookieName
	}
	if c.SessionLifetime.Duration != 0 {
		config.SessionLifetime = time.Duration(c.SessionLifetime.Duration)
	}
	if c.SessionRefreshWindow.Duration != 0 {
		config.SessionRefreshWindow = time.Duration(c.SessionRefreshWindow.Duration)
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
}
