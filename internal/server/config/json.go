package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/akulikov/boardd/internal/flagx"
	"github.com/akulikov/boardd/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "15m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	Addr                 string         `json:"addr"`
	DatabaseDSN          string         `json:"database_dsn"`
	AccessTokenSecret    string         `json:"access_token_secret"`
	RefreshTokenSecret   string         `json:"refresh_token_secret"`
	AccessTokenTTL       timex.Duration `json:"access_token_ttl"`
	RefreshTokenTTL      timex.Duration `json:"refresh_token_ttl"`
	RefreshCookieName    string         `json:"refresh_cookie_name"`
	BcryptCost           int            `json:"bcrypt_cost"`
	ActivationCodeLength int            `json:"activation_code_length"`
	SMTPHost             string         `json:"smtp_host"`
	SMTPPort             int            `json:"smtp_port"`
	SMTPUser             string         `json:"smtp_user"`
	SMTPPass             string         `json:"smtp_pass"`
	MailFrom             string         `json:"mail_from"`
	FrontendURL          string         `json:"frontend_url"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
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

	config.Addr = c.Addr
	config.DatabaseDSN = c.DatabaseDSN
	config.AccessTokenSecret = c.AccessTokenSecret
	config.RefreshTokenSecret = c.RefreshTokenSecret
	config.AccessTokenTTL = time.Duration(c.AccessTokenTTL.Duration)
	config.RefreshTokenTTL = time.Duration(c.RefreshTokenTTL.Duration)
	config.RefreshCookieName = c.RefreshCookieName
	config.BcryptCost = c.BcryptCost
	config.ActivationCodeLength = c.ActivationCodeLength
	config.SMTPHost = c.SMTPHost
	config.SMTPPort = c.SMTPPort
	config.SMTPUser = c.SMTPUser
	config.SMTPPass = c.SMTPPass
	config.MailFrom = c.MailFrom
	config.FrontendURL = c.FrontendURL
}
