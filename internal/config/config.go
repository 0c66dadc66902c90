package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Identity  IdentityConfig  `yaml:"identity"`
	Inference InferenceConfig `yaml:"inference"`
	UseCases  UseCasesConfig  `yaml:"usecases"`
	History   HistoryConfig   `yaml:"history"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials Switch `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings. WriteTimeout must outlive the
// inference timeout or slow completions are cut off mid-response.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     Switch        `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// IdentityConfig holds settings for the external identity authority.
type IdentityConfig struct {
	CredentialsPath string        `yaml:"credentials_path" env:"IDENTITY_CREDENTIALS_PATH" env-required:"true"`
	ProjectID       string        `yaml:"project_id"       env:"IDENTITY_PROJECT_ID"`
	CertsURL        string        `yaml:"certs_url"        env:"IDENTITY_CERTS_URL"        env-default:"https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"`
	IssuerPrefix    string        `yaml:"issuer_prefix"    env:"IDENTITY_ISSUER_PREFIX"    env-default:"https://securetoken.google.com/"`
	LookupBaseURL   string        `yaml:"lookup_base_url"  env:"IDENTITY_LOOKUP_BASE_URL"  env-default:"https://identitytoolkit.googleapis.com/v1"`
	CheckRevoked    Switch        `yaml:"check_revoked"    env:"IDENTITY_CHECK_REVOKED"    env-default:"true"`
	Timeout         time.Duration `yaml:"timeout"          env:"IDENTITY_TIMEOUT"          env-default:"10s"`
}

// Inference providers.
const (
	ProviderWorkersAI = "workersai"
	ProviderGemini    = "gemini"
)

// Provider defaults. The env-default tags carry the workersai values; a
// gemini provider that keeps them gets its own instead.
const (
	defaultWorkersAIBaseURL = "https://api.cloudflare.com/client/v4"
	defaultWorkersAIModel   = "@cf/meta/llama-3.1-8b-instruct"
	defaultGeminiModel      = "gemini-2.0-flash"
)

// InferenceConfig holds settings for the model-serving backend.
type InferenceConfig struct {
	Provider     string        `yaml:"provider"      env:"INFERENCE_PROVIDER"      env-default:"workersai"`
	AccountID    string        `yaml:"account_id"    env:"INFERENCE_ACCOUNT_ID"`
	APIToken     string        `yaml:"api_token"     env:"INFERENCE_API_TOKEN"     env-required:"true"`
	Model        string        `yaml:"model"         env:"INFERENCE_MODEL"         env-default:"@cf/meta/llama-3.1-8b-instruct"`
	BaseURL      string        `yaml:"base_url"      env:"INFERENCE_BASE_URL"      env-default:"https://api.cloudflare.com/client/v4"`
	Timeout      time.Duration `yaml:"timeout"       env:"INFERENCE_TIMEOUT"       env-default:"60s"`
	ProbeTimeout time.Duration `yaml:"probe_timeout" env:"INFERENCE_PROBE_TIMEOUT" env-default:"15s"`
	MaxTokens    int           `yaml:"max_tokens"    env:"INFERENCE_MAX_TOKENS"    env-default:"2048"`
}

// UseCasesConfig points at the use-case definition file (JSON or YAML).
type UseCasesConfig struct {
	Path string `yaml:"path" env:"USECASES_PATH" env-default:"./configs/usecases.json"`
}

// HistoryConfig bounds history pagination and previews.
type HistoryConfig struct {
	DefaultLimit  int `yaml:"default_limit"  env:"HISTORY_DEFAULT_LIMIT"  env-default:"20"`
	MaxLimit      int `yaml:"max_limit"      env:"HISTORY_MAX_LIMIT"      env-default:"100"`
	PreviewLength int `yaml:"preview_length" env:"HISTORY_PREVIEW_LENGTH" env-default:"150"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
