package config

import (
	"flag"
	"os"

	"github.com/mverner/teambook/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string        PostgreSQL DSN
//	-approve         require admin approval for new base-role users
//	-lang string     default language code for new accounts
//	-minpass int     minimum password length
//	-uploads string  local upload blob store root
//	-blob string     blob backend: local | s3
//	-s3key, -s3secret, -s3bucket, -s3region, -s3endpoint
//	-smtphost, -smtpport, -smtpuser, -smtppass, -smtpfrom
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
// Flags lists every command-line flag the config layer owns, including the
// config file flags. Commands taking positional arguments strip these from
// os.Args first.
var Flags = []string{
	"-c", "-config",
	"-d", "-approve", "-lang", "-minpass", "-uploads", "-blob",
	"-s3key", "-s3secret", "-s3bucket", "-s3region", "-s3endpoint",
	"-smtphost", "-smtpport", "-smtpuser", "-smtppass", "-smtpfrom",
}

func parseFlags(config *Config) {
	// Flags minus the config file flags, which parseJSON owns.
	args := flagx.FilterArgs(os.Args[1:], Flags[2:])

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.BoolVar(&config.AdminValidate, "approve", config.AdminValidate, "require admin approval for new users")
	fs.StringVar(&config.DefaultLang, "lang", config.DefaultLang, "default language code")
	fs.IntVar(&config.MinPasswordLength, "minpass", config.MinPasswordLength, "minimum password length")
	fs.StringVar(&config.UploadsDir, "uploads", config.UploadsDir, "upload blob store root directory")
	fs.StringVar(&config.BlobBackend, "blob", config.BlobBackend, "blob backend (local|s3)")

	fs.StringVar(&config.S3AccessKey, "s3key", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "s3secret", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "s3bucket", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "s3region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "s3endpoint", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.SMTPHost, "smtphost", config.SMTPHost, "SMTP host")
	fs.IntVar(&config.SMTPPort, "smtpport", config.SMTPPort, "SMTP port")
	fs.StringVar(&config.SMTPUser, "smtpuser", config.SMTPUser, "SMTP user")
	fs.StringVar(&config.SMTPPassword, "smtppass", config.SMTPPassword, "SMTP password")
	fs.StringVar(&config.SMTPFrom, "smtpfrom", config.SMTPFrom, "SMTP sender address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
