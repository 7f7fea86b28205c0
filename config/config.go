package config

import (
	"os"
	"strconv"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
)

// AppConfig is the full application configuration. Values come from the
// environment, with an optional .env file layered in during development.
type AppConfig struct {
	Server      Server      `json:"server"`
	Auth        Auth        `json:"auth"`
	Persistence Persistence `json:"persistence"`
}

// Load reads the environment and returns the config. A missing token secret
// is a hard failure: the server must never sign sessions with an empty key.
func Load() (*AppConfig, error) {
	// best effort, env vars win over the file
	_ = godotenv.Load()

	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		return nil, goerrors.New("TOKEN_SECRET is required", goerrors.CategoryOperation).
			WithTextCode("MISSING_TOKEN_SECRET")
	}

	cookieName := getString("COOKIE_NAME", "access_token")

	cfg := &AppConfig{
		Server: Server{
			Port: getString("PORT", "8080"),
		},
		Auth: Auth{
			SigningKey:      secret,
			SigningMethod:   "HS256",
			ContextKey:      cookieName,
			TokenExpiration: getInt("TOKEN_TTL_HOURS", 24),
			TokenLookup:     "cookie:" + cookieName,
			AuthScheme:      "Bearer",
			Issuer:          getString("TOKEN_ISSUER", "contentd"),
			Audience:        []string{getString("TOKEN_AUDIENCE", "contentd")},
		},
		Persistence: Persistence{
			DSN:                   getString("DATABASE_DSN", "file:contentd.db?cache=shared&mode=rwc"),
			Debug:                 getBool("DATABASE_DEBUG", false),
			PingTimeoutExpression: getString("DATABASE_PING_TIMEOUT", "5s"),
		},
	}

	return cfg, nil
}

func (a *AppConfig) Validate() error {
	if a.Auth.SigningKey == "" {
		return goerrors.New("signing key must not be empty", goerrors.CategoryOperation)
	}
	return nil
}

func (a *AppConfig) GetServer() Server           { return a.Server }
func (a *AppConfig) GetAuth() Auth               { return a.Auth }
func (a *AppConfig) GetPersistence() Persistence { return a.Persistence }

// Server holds the HTTP listener options
type Server struct {
	Port string `json:"port"`
}

func (s Server) GetPort() string { return s.Port }

// Auth holds the token and cookie options
type Auth struct {
	SigningKey      string   `json:"-"`
	SigningMethod   string   `json:"signing_method"`
	ContextKey      string   `json:"context_key"`
	TokenExpiration int      `json:"token_expiration"`
	TokenLookup     string   `json:"token_lookup"`
	AuthScheme      string   `json:"auth_scheme"`
	Issuer          string   `json:"issuer"`
	Audience        []string `json:"audience"`
}

func (a Auth) GetSigningKey() string    { return a.SigningKey }
func (a Auth) GetSigningMethod() string { return a.SigningMethod }
func (a Auth) GetContextKey() string    { return a.ContextKey }
func (a Auth) GetTokenExpiration() int  { return a.TokenExpiration }
func (a Auth) GetTokenLookup() string   { return a.TokenLookup }
func (a Auth) GetAuthScheme() string    { return a.AuthScheme }
func (a Auth) GetIssuer() string        { return a.Issuer }
func (a Auth) GetAudience() []string    { return a.Audience }

// Persistence holds the database options
type Persistence struct {
	DSN                   string `json:"dsn"`
	Debug                 bool   `json:"debug"`
	PingTimeoutExpression string `json:"ping_timeout"`
}

func (p Persistence) GetDSN() string            { return p.DSN }
func (p Persistence) GetDebug() bool            { return p.Debug }
func (p Persistence) GetDriver() string         { return "sqlite" }
func (p Persistence) GetServer() string         { return p.DSN }
func (p Persistence) GetOtelIdentifier() string { return "" }

func (p Persistence) GetPingTimeout() time.Duration {
	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		return 5 * time.Second
	}
	return dur
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
