package config

import (
	"flag"
	"os"
	"time"

	"github.com/skycastlabs/accounts/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-d string   PostgreSQL DSN
//	-s string   access-token HMAC secret key
//	-t int      access token validity, minutes
//	-o int      password-reset OTP validity, minutes
//	-l int      password-reset OTP length, digits
//	-b string   public base URL used in mail bodies
//	-m string   SMTP address (host:port)
//	-u string   SMTP user
//	-p string   SMTP password
//	-f string   mail From address
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-o", "-l", "-b", "-m", "-u", "-p", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidity.Minutes()), "access_token_validity (in minutes)")
	otpValidity := fs.Int("o", int(config.OTPValidity.Minutes()), "otp_validity (in minutes)")

	fs.IntVar(&config.OTPLength, "l", config.OTPLength, "OTP length in digits")
	fs.StringVar(&config.BaseURL, "b", config.BaseURL, "public base URL")
	fs.StringVar(&config.SMTPAddr, "m", config.SMTPAddr, "SMTP address (host:port)")
	fs.StringVar(&config.SMTPUser, "u", config.SMTPUser, "SMTP user")
	fs.StringVar(&config.SMTPPassword, "p", config.SMTPPassword, "SMTP password")
	fs.StringVar(&config.MailFrom, "f", config.MailFrom, "mail From address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidity = time.Duration(*accessTokenValidity) * time.Minute
	config.OTPValidity = time.Duration(*otpValidity) * time.Minute
}
