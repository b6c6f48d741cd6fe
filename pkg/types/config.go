package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// When empty the catalog runs on the in-memory store.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Attachment byte storage. Uploads fall back to local descriptors
	// when no bucket is configured.
	S3BucketName string `envconfig:"S3_BUCKET_NAME"`

	// Home screen collaborators. Sections are hidden when a key is unset.
	OpenWeatherAPIKey  string `envconfig:"OPENWEATHER_API_KEY"`
	ExchangeRateAPIKey string `envconfig:"EXCHANGE_RATE_API_KEY"`
	DefaultCity        string `envconfig:"DEFAULT_CITY" default:"Guwahati"`

	// Auth Configuration
	SessionMaxAgeSec int `envconfig:"SESSION_MAX_AGE_SEC" default:"604800"` // 7 days

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}
