package storage

// Config describes the S3-compatible bucket that holds source assets,
// their variants and the import sidecars written next to them.
type Config struct {
	// Endpoint is the host:port of the S3 or MinIO service, with or without scheme.
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	// Bucket holds source assets, variants and sidecars under the same keys
	// the engine uses as asset paths.
	Bucket string `mapstructure:"bucket" default:"assets"`
	// Region is only used when the bucket has to be created.
	Region string `mapstructure:"region" default:""`
	// CreateBucket makes commands create a missing bucket instead of failing on first access.
	CreateBucket bool `mapstructure:"create_bucket" default:"false"`
	// TimeoutSeconds bounds dialing and response headers of every request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
