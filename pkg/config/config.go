package config

import "time"

// LostFound definition lostfound_service YAML structure
type LostFound struct {
	Port       string        `mapstructure:"port"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	// TokenTTL jwt 絕對有效期, session_ttl 為閒置逾時
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	JWTSecret  string        `mapstructure:"jwt_secret"`

	PostgreSQL DatabaseConfig  `mapstructure:"pg"`
	Redis      RedisConfig     `mapstructure:"redis"`
	MinIO      MinIOConfig     `mapstructure:"minio"`
	RabbitMQ   RabbitMQConfig  `mapstructure:"rabbitmq"`
	SMTP       SMTPConfig      `mapstructure:"smtp"`
	Messaging  MessagingConfig `mapstructure:"messaging"`
	Upload     UploadConfig    `mapstructure:"upload"`
}

// RedisConfig definition redis setting
type RedisConfig struct {
	Addr    string `mapstructure:"addr"`
	RedisDB int    `mapstructure:"redis_db"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// MinIOConfig definition object storage setting
type MinIOConfig struct {
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	User          string        `mapstructure:"user"`
	Password      string        `mapstructure:"password"`
	BucketName    string        `mapstructure:"bucket_name"`
	UseSSL        bool          `mapstructure:"use_ssl"`
	PublicBaseURL string        `mapstructure:"public_base_url"`
	RetryCount    int           `mapstructure:"retry_count"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

// RabbitMQConfig definition rabbitmq setting
type RabbitMQConfig struct {
	IP            string        `mapstructure:"ip"`
	Port          string        `mapstructure:"port"`
	User          string        `mapstructure:"user"`
	Password      string        `mapstructure:"password"`
	RetryCount    int           `mapstructure:"retry_count"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

// SMTPConfig definition mail setting, empty host disable notify
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// MessagingConfig definition message view refresh setting
type MessagingConfig struct {
	UnreadPollInterval time.Duration `mapstructure:"unread_poll_interval"`
}

// UploadConfig definition image upload limit
type UploadConfig struct {
	MaxImageBytes int64 `mapstructure:"max_image_bytes"`
}

const (
	defaultUnreadPollInterval = 30 * time.Second
	defaultMaxImageBytes      = 5 * 1024 * 1024
	defaultBucketName         = "item-images"
	defaultTokenTTL           = 24 * time.Hour
)

// ApplyDefaults fill zero values
func (c *LostFound) ApplyDefaults() {
	if c.Messaging.UnreadPollInterval <= 0 {
		c.Messaging.UnreadPollInterval = defaultUnreadPollInterval
	}
	if c.Upload.MaxImageBytes <= 0 {
		c.Upload.MaxImageBytes = defaultMaxImageBytes
	}
	if c.MinIO.BucketName == "" {
		c.MinIO.BucketName = defaultBucketName
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = time.Hour
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = defaultTokenTTL
	}
	if c.TokenTTL < c.SessionTTL {
		c.TokenTTL = c.SessionTTL
	}
}
