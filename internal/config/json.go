package config

import (
	"encoding/json"
	"os"

	"github.com/mverner/teambook/internal/flagx"
)

// JsonConfig is the intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct.
type JsonConfig struct {
	DatabaseDSN       string `json:"database_dsn"`
	AdminValidate     bool   `json:"admin_validate"`
	DefaultLang       string `json:"default_lang"`
	MinPasswordLength int    `json:"min_password_length"`
	UploadsDir        string `json:"uploads_dir"`
	BlobBackend       string `json:"blob_backend"`
	S3AccessKey       string `json:"s3_access_key"`
	S3SecretKey       string `json:"s3_secret_key"`
	S3Bucket          string `json:"s3_bucket"`
	S3Region          string `json:"s3_region"`
	S3BaseEndpoint    string `json:"s3_base_endpoint"`
	SMTPHost          string `json:"smtp_host"`
	SMTPPort          int    `json:"smtp_port"`
	SMTPUser          string `json:"smtp_user"`
	SMTPPassword      string `json:"smtp_password"`
	SMTPFrom          string `json:"smtp_from"`
}

// parseJSON loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJSON(config *Config) {
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

	config.DatabaseDSN = c.DatabaseDSN
	config.AdminValidate = c.AdminValidate
	config.DefaultLang = c.DefaultLang
	config.MinPasswordLength = c.MinPasswordLength
	config.UploadsDir = c.UploadsDir
	config.BlobBackend = c.BlobBackend
	config.S3AccessKey = c.S3AccessKey
	config.S3SecretKey = c.S3SecretKey
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.SMTPHost = c.SMTPHost
	config.SMTPPort = c.SMTPPort
	config.SMTPUser = c.SMTPUser
	config.SMTPPassword = c.SMTPPassword
	config.SMTPFrom = c.SMTPFrom
}
