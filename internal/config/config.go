package config

type AppConfig struct {
	APIPort   string `env:"PORT" envDefault:"4000"`
	AppSource string `env:"APP_SOURCE" envDefault:"photostack"`
}

type PhotostackDatabaseConfig struct {
	Host            string `env:"PHOTOSTACK_POSTGRES_HOST,required"`
	Port            string `env:"PHOTOSTACK_POSTGRES_PORT,required"`
	User            string `env:"PHOTOSTACK_POSTGRES_USER,required"`
	DBName          string `env:"PHOTOSTACK_POSTGRES_DB_NAME,required"`
	Password        string `env:"PHOTOSTACK_POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"PHOTOSTACK_POSTGRES_DB_MAX_CONN" envDefault:"50"`
	MaxIdleConn     int    `env:"PHOTOSTACK_POSTGRES_DB_MAX_IDLE_CONN" envDefault:"10"`
	ConnMaxLifetime int    `env:"PHOTOSTACK_POSTGRES_DB_CONN_MAX_LIFETIME" envDefault:"60"`
	LogLevel        string `env:"PHOTOSTACK_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"PHOTOSTACK_POSTGRES_SSL_MODE" envDefault:"disable"`
}

type GithubOAuthConfig struct {
	ClientID       string `env:"GITHUB_CLIENT_ID"`
	ClientSecret   string `env:"GITHUB_CLIENT_SECRET"`
	TokenURL       string `env:"GITHUB_TOKEN_URL" envDefault:"https://github.com/login/oauth/access_token"`
	UserURL        string `env:"GITHUB_USER_URL" envDefault:"https://api.github.com/user"`
	TimeoutSeconds int    `env:"GITHUB_TIMEOUT_SECONDS" envDefault:"10"`
}
