package config

type AppConfig struct {
	ListenAddr   string `yaml:"listen_addr" env:"NIS2C_LISTEN_ADDR" env-default:"0.0.0.0:8080"`
	AppEnv       string `yaml:"app_env" env:"NIS2C_APP_ENV"`
	DBDriver     string `yaml:"db_driver" env:"NIS2C_DB_DRIVER" env-default:"sqlite"`
	DBURL        string `yaml:"db_url" env:"NIS2C_DB_URL" env-default:"data/copilot.db"`
	AuditEnabled bool   `yaml:"audit_enabled" env:"NIS2C_AUDIT_ENABLED" env-default:"true"`

	Org       OrgConfig       `yaml:"org"`
	Intake    IntakeConfig    `yaml:"intake"`
	Storage   StorageConfig   `yaml:"storage"`
	AI        AIConfig        `yaml:"ai"`
	Retention RetentionConfig `yaml:"retention"`
}

// OrgConfig feeds the metadata block of every rendered report.
type OrgConfig struct {
	Company        string   `yaml:"company" env:"NIS2C_ORG_COMPANY"`
	RegulatorID    string   `yaml:"regulator_id" env:"NIS2C_ORG_REGULATOR_ID"`
	SectorCategory string   `yaml:"sector_category" env:"NIS2C_ORG_SECTOR"`
	Classification string   `yaml:"classification" env:"NIS2C_ORG_CLASSIFICATION"` // essential or important
	MemberStates   []string `yaml:"member_states" env:"NIS2C_ORG_MEMBER_STATES" env-separator:","`
}

type IntakeConfig struct {
	MaxFiles       int   `yaml:"max_files" env:"NIS2C_INTAKE_MAX_FILES" env-default:"3"`
	MaxFileBytes   int64 `yaml:"max_file_bytes" env:"NIS2C_INTAKE_MAX_FILE_BYTES" env-default:"3145728"`
	BodyLimitBytes int64 `yaml:"body_limit_bytes" env:"NIS2C_INTAKE_BODY_LIMIT_BYTES" env-default:"20971520"`
}

type StorageConfig struct {
	Backend       string   `yaml:"backend" env:"NIS2C_STORAGE_BACKEND" env-default:"local"` // local or s3
	LocalDir      string   `yaml:"local_dir" env:"NIS2C_STORAGE_LOCAL_DIR" env-default:"data/blobs"`
	PublicBaseURL string   `yaml:"public_base_url" env:"NIS2C_STORAGE_PUBLIC_BASE_URL"`
	S3            S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket" env:"NIS2C_STORAGE_S3_BUCKET"`
	Region   string `yaml:"region" env:"NIS2C_STORAGE_S3_REGION"`
	Endpoint string `yaml:"endpoint" env:"NIS2C_STORAGE_S3_ENDPOINT"`
	Prefix   string `yaml:"prefix" env:"NIS2C_STORAGE_S3_PREFIX"`
}

type AIConfig struct {
	Endpoint    string  `yaml:"endpoint" env:"NIS2C_AI_ENDPOINT" env-default:"https://api.openai.com/v1"`
	Model       string  `yaml:"model" env:"NIS2C_AI_MODEL" env-default:"gpt-4o-mini"`
	APIKey      string  `yaml:"api_key" env:"OPENAI_API_KEY"`
	TimeoutSec  int     `yaml:"timeout_sec" env:"NIS2C_AI_TIMEOUT" env-default:"45"`
	Temperature float64 `yaml:"temperature" env:"NIS2C_AI_TEMPERATURE" env-default:"0.2"`
}

// RetentionConfig drives the local blob sweeper; it never touches the audit log.
type RetentionConfig struct {
	Enabled    bool   `yaml:"enabled" env:"NIS2C_RETENTION_ENABLED" env-default:"false"`
	Schedule   string `yaml:"schedule" env:"NIS2C_RETENTION_SCHEDULE" env-default:"0 3 * * *"`
	MaxAgeDays int    `yaml:"max_age_days" env:"NIS2C_RETENTION_MAX_AGE_DAYS" env-default:"90"`
}
