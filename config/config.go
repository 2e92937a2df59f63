package config

import (
	"flag"
	"os"
	"strconv"
	"sync"
)

const (
	defaultServerAddress = ":8080"
	defaultDatabaseDSN   = ""
	defaultFlowBaseURL   = "https://sandbox.flow.cl/api"
	defaultPublicBaseURL = "http://localhost:8080"
	defaultStoreURL      = "http://localhost:3000"
	defaultEmailPort     = 587
	defaultEmailFrom     = "noreply@fungigrow.cl"
	defaultLogLevel      = "debug"
)

// Config is the immutable process configuration. It is built once at startup
// and injected into each component; nothing reads the environment afterwards.
type Config struct {
	ServerAddr  string
	DatabaseDSN string
	LogLevel    string

	FlowAPIKey    string
	FlowSecretKey string
	FlowBaseURL   string

	PublicBaseURL string
	StoreURL      string

	SaleWebhookURL string

	EmailHost       string
	EmailPort       int
	EmailUser       string
	EmailPassword   string
	EmailFrom       string
	StoreOwnerEmail string

	AdminPasswordHash string
	JWTSecret         string
}

var (
	once      sync.Once
	singleton *Config
)

// New returns new Config. It parses command line and environment variables
// only once.
func New() (*Config, error) {
	once.Do(func() {
		cfg := Config{
			FlowBaseURL:   defaultFlowBaseURL,
			PublicBaseURL: defaultPublicBaseURL,
			StoreURL:      defaultStoreURL,
			EmailPort:     defaultEmailPort,
			EmailFrom:     defaultEmailFrom,
		}

		// initialize flags
		flag.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "store api server address")
		flag.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "store database DSN")
		flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")

		flag.Parse()

		// if environment variable is set, then using it
		if runAddrEnv := os.Getenv("RUN_ADDRESS"); runAddrEnv != "" {
			cfg.ServerAddr = runAddrEnv
		}
		if databaseURIEnv := os.Getenv("DATABASE_URI"); databaseURIEnv != "" {
			cfg.DatabaseDSN = databaseURIEnv
		}
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			cfg.LogLevel = logLevelEnv
		}

		cfg.FlowAPIKey = os.Getenv("FLOW_API_KEY")
		cfg.FlowSecretKey = os.Getenv("FLOW_SECRET_KEY")
		if flowBaseURLEnv := os.Getenv("FLOW_API_URL"); flowBaseURLEnv != "" {
			cfg.FlowBaseURL = flowBaseURLEnv
		}
		if publicBaseURLEnv := os.Getenv("PUBLIC_URL_BASE"); publicBaseURLEnv != "" {
			cfg.PublicBaseURL = publicBaseURLEnv
		}
		if storeURLEnv := os.Getenv("FUNGIGROW_STORE_URL"); storeURLEnv != "" {
			cfg.StoreURL = storeURLEnv
		}

		cfg.SaleWebhookURL = os.Getenv("SALE_WEBHOOK_URL")

		cfg.EmailHost = os.Getenv("EMAIL_HOST")
		if emailPortEnv := os.Getenv("EMAIL_PORT"); emailPortEnv != "" {
			if port, err := strconv.Atoi(emailPortEnv); err == nil {
				cfg.EmailPort = port
			}
		}
		cfg.EmailUser = os.Getenv("EMAIL_HOST_USER")
		cfg.EmailPassword = os.Getenv("EMAIL_HOST_PASSWORD")
		if emailFromEnv := os.Getenv("DEFAULT_FROM_EMAIL"); emailFromEnv != "" {
			cfg.EmailFrom = emailFromEnv
		}
		cfg.StoreOwnerEmail = os.Getenv("STORE_OWNER_EMAIL")

		cfg.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
		cfg.JWTSecret = os.Getenv("JWT_SECRET")

		singleton = &cfg
	})

	return singleton, nil
}
