package conf

import (
	"context"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"okinoko-blade_arena/internal/msgs"

	"sigs.k8s.io/yaml" // handles json tags, so one set of tags serves file and API
)

type ArenaConfig struct {
	Log    LogConfig    `json:"log"`
	DB     DBConfig     `json:"db"`
	HTTP   HTTPConfig   `json:"http"`
	Auth   AuthConfig   `json:"auth"`
	Game   GameConfig   `json:"game"`
	Client ClientConfig `json:"client"`
}

type LogConfig struct {
	// the logging level
	Level *string `json:"level" env:"ARENA_LOG_LEVEL"`
	// the format ('simple', 'detailed', 'json')
	Format *string `json:"format" env:"ARENA_LOG_FORMAT"`
	// the output location ('stdout','stderr','file')
	Output       *string       `json:"output" env:"ARENA_LOG_OUTPUT"`
	ForceColor   *bool         `json:"forceColor"`
	DisableColor *bool         `json:"disableColor" env:"ARENA_LOG_NO_COLOR"`
	TimeFormat   *string       `json:"timeFormat"`
	UTC          *bool         `json:"utc"`
	File         LogFileConfig `json:"file"`
}

type LogFileConfig struct {
	Filename   *string `json:"filename" env:"ARENA_LOG_FILE"`
	MaxSizeMB  *int    `json:"maxSizeMB"`
	MaxBackups *int    `json:"maxBackups"`
	MaxAge     *string `json:"maxAge"`
	Compress   *bool   `json:"compress"`
}

type DBConfig struct {
	DSN *string `json:"dsn" env:"ARENA_DB_DSN"`
	// how long a bumped record is retained before it may be swept
	TTL          *string `json:"ttl" env:"ARENA_DB_TTL"`
	DebugQueries *bool   `json:"debugQueries"`
}

type HTTPConfig struct {
	Address      *string `json:"address" env:"ARENA_HTTP_ADDRESS"`
	ReadTimeout  *string `json:"readTimeout"`
	WriteTimeout *string `json:"writeTimeout"`
}

type AuthConfig struct {
	JWTSecret *string `json:"jwtSecret" env:"ARENA_JWT_SECRET"`
	Issuer    *string `json:"issuer" env:"ARENA_JWT_ISSUER"`
	TokenTTL  *string `json:"tokenTTL"`
}

type GameConfig struct {
	ContractAddress *string `json:"contractAddress" env:"ARENA_CONTRACT_ADDRESS"`
	BotAddress      *string `json:"botAddress" env:"ARENA_BOT_ADDRESS"`
}

// ClientConfig is used by the CLI commands that talk to a running server.
type ClientConfig struct {
	URL            *string `json:"url" env:"ARENA_API_URL"`
	Token          *string `json:"token" env:"ARENA_TOKEN"`
	RequestTimeout *string `json:"requestTimeout"`
}

var LogDefaults = &LogConfig{
	Level:        P("info"),
	Format:       P("simple"),
	Output:       P("stderr"),
	ForceColor:   P(false),
	DisableColor: P(false),
	TimeFormat:   P("2006-01-02T15:04:05.000Z07:00"),
	UTC:          P(false),
	File: LogFileConfig{
		Filename:   P("arena.log"),
		MaxSizeMB:  P(100),
		MaxBackups: P(2),
		MaxAge:     P("24h"),
		Compress:   P(true),
	},
}

var DBDefaults = &DBConfig{
	DSN:          P("file:arena.db?_busy_timeout=5000"),
	TTL:          P("720h"),
	DebugQueries: P(false),
}

var HTTPDefaults = &HTTPConfig{
	Address:      P("127.0.0.1:8420"),
	ReadTimeout:  P("30s"),
	WriteTimeout: P("30s"),
}

var AuthDefaults = &AuthConfig{
	Issuer:   P("blade-arena"),
	TokenTTL: P("24h"),
}

var GameDefaults = &GameConfig{
	ContractAddress: P("contract:arena"),
	BotAddress:      P("contract:arena-bot"),
}

var ClientDefaults = &ClientConfig{
	URL:            P("http://127.0.0.1:8420"),
	RequestTimeout: P("30s"),
}

func ReadAndParseYAMLFile(ctx context.Context, filePath string, config *ArenaConfig) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return i18n.NewError(ctx, msgs.MsgConfigFileMissing, filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return i18n.NewError(ctx, msgs.MsgConfigFileReadError, filePath, err.Error())
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return i18n.NewError(ctx, msgs.MsgConfigFileParseError, err.Error())
	}
	return nil
}

// ApplyEnv overlays ARENA_* environment variables onto the config. Values
// set in the environment win over the file.
func ApplyEnv(ctx context.Context, config *ArenaConfig) error {
	if err := env.Parse(config); err != nil {
		return i18n.NewError(ctx, msgs.MsgConfigEnvParseError, err.Error())
	}
	return nil
}

// Load reads the optional config file then applies the environment.
func Load(ctx context.Context, filePath string) (*ArenaConfig, error) {
	config := &ArenaConfig{}
	if filePath != "" {
		if err := ReadAndParseYAMLFile(ctx, filePath, config); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(ctx, config); err != nil {
		return nil, err
	}
	return config, nil
}
