package config

import "time"

const defaultPort = 8080

const defaultAPIBaseURL = "https://ruru-backend.onrender.com/api/v1"

var defaultAPI = API{
	BaseURL:     defaultAPIBaseURL,
	Timeout:     10 * time.Second,
	MaxAttempts: 3,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    time.Second,
}

var defaultSession = Session{
	CookieName: "ruru_session",
	TTL:        12 * time.Hour,
	Secure:     false,
}

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "ruru",
	Pass: "ruru",
	Name: "ruru_backoffice",
}

var defaultKafka = Kafka{
	AuditTopic: "ruru.admin.audit",
	GroupID:    "ruru-audit-worker",
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       1,
	Burst:      5,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultUI = UI{
	PageSize:     10,
	WorkspaceTTL: 30 * time.Minute,
	PublicLimit:  20,
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int { return defaultPort }

// DefaultAPI returns the default Ruru API client settings.
func DefaultAPI() API { return defaultAPI }

// DefaultSession returns the default session settings.
func DefaultSession() Session { return defaultSession }

// DefaultDB returns the default audit database settings.
func DefaultDB() DB { return defaultDB }

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka { return defaultKafka }

// DefaultRateLimit returns the default login rate limit settings.
func DefaultRateLimit() RateLimit { return defaultRateLimit }

// DefaultUI returns the default admin UI settings.
func DefaultUI() UI { return defaultUI }
