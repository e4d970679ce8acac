package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/skycastlabs/accounts/internal/flagx"
	"github.com/skycastlabs/accounts/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "15m" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	Addr                string         `json:"address"`
	DatabaseDSN         string         `json:"database_dsn"`
	SecretKey           string         `json:"secret_key"`
	AccessTokenValidity timex.Duration `json:"access_token_validity"`
	OTPLength           int            `json:"otp_length"`
	OTPValidity         timex.Duration `json:"otp_validity"`
	BaseURL             string         `json:"base_url"`
	SMTPAddr            string         `json:"smtp_addr"`
	SMTPUser            string         `json:"smtp_user"`
	SMTPPassword        string         `json:"smtp_password"`
	MailFrom            string         `json:"mail_from"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
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

	config.Addr = c.Addr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidity = time.Duration(c.AccessTokenValidity.Duration)
	config.OTPLength = c.OTPLength
	config.OTPValidity = time.Duration(c.OTPValidity.Duration)
	config.BaseURL = c.BaseURL
	config.SMTPAddr = c.SMTPAddr
	config.SMTPUser = c.SMTPUser
	config.SMTPPassword = c.SMTPPassword
	config.MailFrom = c.MailFrom
}
