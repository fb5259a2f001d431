package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	Redis    Redis    `envPrefix:"REDIS_"`
	Provider Provider `envPrefix:"PAYMENT_"`
	Auth     Auth     `envPrefix:"AUTH_"`
}

// Provider holds the payment provider API credentials. The webhook secret
// signs the raw webhook body (HMAC-SHA256) and must match the value
// configured on the provider dashboard.
type Provider struct {
	BaseApiURL    string `env:"BASE_API_URL"`
	SecretKey     string `env:"SECRET_KEY"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
}

type Redis struct {
	Addr         string `env:"ADDR"`
	Password     string `env:"PASSWORD"`
	DB           int    `env:"DB" envDefault:"0"`
	RuleCacheTTL int    `env:"RULE_CACHE_TTL_SEC" envDefault:"60"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
