package storage

// Config is the "storage" section: the S3-compatible service holding
// mailbox archives and published reports.
type Config struct {
	// Endpoint is host:port of the service; an http(s):// scheme is stripped.
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	// Bucket is used by s3:// locations that leave the bucket empty.
	Bucket string `mapstructure:"bucket" default:"mailboxes"`
	// ReportPrefix is where reports go when an s3:// output names no key.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports/"`
	Region       string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds dialing and waiting for response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
