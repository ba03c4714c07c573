package config

import "os"

// parseEnv overlays configuration values from the process environment.
// Recognized variables mirror the deployment surface of the service:
//
//	EVE_SERVER_ADDR                  HTTP bind address
//	DATABASE_URL                     PostgreSQL DSN
//	EVE_SERVER_SESSION_ID_COOKIE_KEY session cookie name
//	EVE_SERVER_SECRET_KEY            JWT HMAC secret
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("EVE_SERVER_ADDR"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_URL"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("EVE_SERVER_SESSION_ID_COOKIE_KEY"); ok {
		config.SessionCookieName = v
	}
	if v, ok := os.LookupEnv("EVE_SERVER_SECRET_KEY"); ok {
		config.SecretKey = v
	}
}
