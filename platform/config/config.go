package config

import (
	"time"

	"github.com/alecthomas/kong"
	_ "github.com/joho/godotenv/autoload"
)

// Config holds every runtime setting. Each field can be given as a flag or
// through the environment; .env is loaded before parsing.
type Config struct {
	HttpPort    int      `help:"HTTP port for the room API." env:"HTTP_PORT" default:"4101"`
	SocketPort  int      `help:"Port for the socket.io server." env:"SOCKET_PORT" default:"8000"`
	CorsOrigins []string `help:"Allowed CORS origins." env:"CORS_ORIGINS" default:"http://localhost:3000"`

	Store    string `help:"Room store backend." env:"STORE" enum:"memory,redis" default:"memory"`
	RedisUrl string `help:"Redis address or redis:// URL." env:"REDIS_URL" default:"localhost:6379"`

	Postgres   bool   `help:"Record rooms and results in Postgres." env:"POSTGRES_ENABLED" default:"false"`
	DbUser     string `help:"Postgres user." env:"DB_USER" default:"postgres"`
	DbPassword string `help:"Postgres password." env:"DB_PASSWORD" default:""`
	DbAddr     string `help:"Postgres address." env:"DB_ADDR" default:"localhost:5432"`
	DbName     string `help:"Postgres database." env:"DB_NAME" default:"twoworlds"`

	StepDelay      time.Duration `help:"Pause between animated movement steps." env:"STEP_DELAY" default:"200ms"`
	AbandonTimeout time.Duration `help:"How long a disconnected player's turn waits before it is abandoned." env:"ABANDON_TIMEOUT" default:"60s"`
	IntentRate     float64       `help:"Intents per second allowed per connection." env:"INTENT_RATE" default:"10"`
	IntentBurst    int           `help:"Intent burst allowed per connection." env:"INTENT_BURST" default:"20"`

	LogLevel  string `help:"Log level." env:"LOG_LEVEL" default:"info"`
	LogFormat string `help:"Log format." env:"LOG_FORMAT" enum:"text,json" default:"text"`
}

// Parse reads the configuration from args and the environment.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}
	parser, err := kong.New(cfg,
		kong.Name("twoworlds"),
		kong.Description("authoritative game server for two-worlds rooms"),
		kong.UsageOnError(),
	)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}
