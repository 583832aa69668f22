package patrol

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/df-mc/dragonfly/server"
	"github.com/restartfu/gophig"
	"github.com/sandertv/gophertunnel/minecraft/text"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/internal"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/util"
)

// SentryFlushTimeout is how long buffered sentry events are given to be sent before exiting.
const SentryFlushTimeout = internal.SentryFlushTimeout

// Config holds the server configuration, including route and skin paths and the status service.
type Config struct {
	Patrol struct {
		SentryDsn string
		LogLevel  string // Can be "debug", "info", "warn", "error"
		RoutePath string

		SkinPath   string
		SkinPack   string
		SkinPrompt bool

		// TickInterval is the time between two patrol steps.
		TickInterval util.Duration
		Operators    []string
	}
	Service struct {
		StatusAddress string
		StatusKey     string
	}
	server.UserConfig
}

// DefaultConfig returns a config with prefilled default values.
func DefaultConfig() Config {
	c := Config{}

	c.Patrol.SentryDsn = ""
	c.Patrol.LogLevel = "info"
	c.Patrol.RoutePath = "resources/routes"

	c.Patrol.SkinPath = "resources/skins"
	c.Patrol.SkinPack = "resources/skins/patrol-skins.mcpack"
	c.Patrol.SkinPrompt = true

	c.Patrol.TickInterval = util.Duration(internal.DefaultTickInterval)
	c.Patrol.Operators = []string{}

	c.Service.StatusAddress = ":8080"
	c.Service.StatusKey = "secret-key"

	userConfig := server.DefaultConfig()
	userConfig.Server.Name = text.Colourf("<aqua>Patrol</aqua>")
	userConfig.World.Folder = "resources/world"

	userConfig.Players.Folder = "resources/player_data"
	userConfig.Players.MaximumChunkRadius = 8

	c.UserConfig = userConfig

	return c
}

// ParseLogLevel returns the appropriate slog.Level based on string configuration.
// Returns an error if the provided log level string is not recognized.
func ParseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unrecognized log level: %q", level)
	}
}

// ReadConfig loads the server configuration from config.toml.
// If the file doesn't exist, it creates a new one with default values.
func ReadConfig() (Config, error) {
	return readConfig("./config.toml")
}

// readConfig ...
func readConfig(path string) (Config, error) {
	g := gophig.NewGophig[Config](path, gophig.TOMLMarshaler{}, os.ModePerm)
	_, err := g.LoadConf()
	if os.IsNotExist(err) {
		err = g.SaveConf(DefaultConfig())
		if err != nil {
			return Config{}, err
		}
	}
	c, err := g.LoadConf()
	if err != nil {
		return c, err
	}
	if c.Patrol.TickInterval <= 0 {
		c.Patrol.TickInterval = util.Duration(internal.DefaultTickInterval)
	}
	return c, nil
}
