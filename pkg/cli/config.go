/*
Package cli facilitates building command-line hosts for the TeslaMate query dispatcher. It defines a
[Config] type that can be used to register common command-line flags (using the Golang flag
package), read a TOML configuration file, and fill in the remaining fields from environment
variables.

The package uses [keyring]'s platform-agnostic interface for storing the Cloudflare Access client
secret in an OS-dependent credential store.

# Examples

	config, err := cli.NewConfig()
	if err != nil {
		panic(err)
	}
	config.RegisterCommandLineFlags() // Adds command-line flags for the API URL, credentials, etc.
	flag.Parse()
	if err := config.LoadFile(); err != nil { // Fills in missing fields from the -config file
		panic(err)
	}
	config.ReadFromEnvironment() // Fills in missing fields using environment variables
	if err := config.LoadCredentials(); err != nil { // Prompt for keyring password if needed
		panic(err)
	}
	client, err := teslamate.New(config.Telemetry())

Values are never overwritten once set, so the order of calls above gives command-line flags
precedence over the file, and the file precedence over the environment.
*/
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/99designs/keyring"

	"github.com/teslamate-tools/teslamate-query/internal/log"
	"github.com/teslamate-tools/teslamate-query/pkg/teslamate"
)

// Environment variable names used by [Config.ReadFromEnvironment] to set common parameters.
const (
	EnvBaseURL        = "TESLAMATE_API_URL"
	EnvClientID       = "TESLAMATE_CLIENT_ID"
	EnvClientSecret   = "TESLAMATE_CLIENT_SECRET"
	EnvSecretName     = "TESLAMATE_SECRET_NAME"
	EnvLanguage       = "TESLAMATE_LANG"
	EnvTimeout        = "TESLAMATE_TIMEOUT"
	EnvConfigFile     = "TESLAMATE_CONFIG"
	EnvVerbose        = "TESLAMATE_VERBOSE"
	EnvLogFile        = "TESLAMATE_LOG_FILE"
	EnvBotToken       = "TESLAMATE_BOT_TOKEN"
	EnvBotWhitelist   = "TESLAMATE_BOT_WHITELIST"
	EnvBotAPIEndpoint = "TESLAMATE_BOT_API_ENDPOINT"
	EnvKeyringType    = "TESLAMATE_KEYRING_TYPE"
	EnvKeyringPass    = "TESLAMATE_KEYRING_PASSWORD"
	EnvKeyringPath    = "TESLAMATE_KEYRING_PATH"
	EnvKeyringDebug   = "TESLAMATE_KEYRING_DEBUG"
)

var (
	ErrNoBaseURL       = errors.New("TeslaMate API URL not provided")
	ErrNoSecretName    = errors.New("keyring name for the client secret not provided")
	ErrNoBotToken      = errors.New("telegram bot token not provided")
	ErrEmptyWhitelist  = errors.New("telegram chat whitelist is empty")
	ErrSecretNotFound  = keyring.ErrKeyNotFound
	ErrInvalidHeader   = errors.New("header must have the form Name:Value")
	ErrInvalidChatID   = errors.New("invalid chat ID")
	ErrInvalidDuration = errors.New("invalid timeout")
)

// HeaderList collects extra request headers given as repeated Name:Value flags.
type HeaderList map[string]string

// Set adds a header from a command-line argument.
func (h *HeaderList) Set(value string) error {
	name, content, ok := strings.Cut(value, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("%w: '%s'", ErrInvalidHeader, value)
	}
	if *h == nil {
		*h = make(HeaderList)
	}
	(*h)[name] = strings.TrimSpace(content)
	return nil
}

func (h *HeaderList) String() string {
	if h == nil {
		return ""
	}
	var headers []string
	for name, value := range *h {
		headers = append(headers, name+":"+value)
	}
	sort.Strings(headers)
	return strings.Join(headers, ",")
}

// ChatList collects Telegram chat IDs given as comma-separated or repeated flags.
type ChatList []int64

// Set appends one or more comma-separated chat IDs.
func (l *ChatList) Set(value string) error {
	for _, field := range strings.Split(value, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return fmt.Errorf("%w '%s': %s", ErrInvalidChatID, field, err)
		}
		*l = append(*l, id)
	}
	return nil
}

func (l *ChatList) String() string {
	if l == nil {
		return ""
	}
	ids := make([]string, len(*l))
	for i, id := range *l {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(ids, ",")
}

// Contains reports whether id is in the list.
func (l ChatList) Contains(id int64) bool {
	for _, allowed := range l {
		if allowed == id {
			return true
		}
	}
	return false
}

// TelegramConfig holds the settings of the Telegram host.
type TelegramConfig struct {
	BotToken    string
	Whitelist   ChatList
	APIEndpoint string // Optional self-hosted Bot API server, e.g. "http://localhost:8081"
}

// Config fields determine how a host reaches the TeslaMate API and how it renders replies.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	SecretName   string // Name of the client secret in the system keyring
	Language     string // BCP 47 tag selecting the report catalog
	Timeout      time.Duration
	Headers      HeaderList
	Filename     string // TOML configuration file
	Backend      keyring.Config
	BackendType  backendType
	Debug        bool   // Enable keyring debug messages
	Verbose      bool   // Enable debug logging
	LogFile      string // Rotated log file; empty logs to stderr
	Telegram     TelegramConfig

	password *string
}

func NewConfig() (*Config, error) {
	c := Config{
		Backend: keyring.Config{
			ServiceName:              keyringServiceName,
			KeychainTrustApplication: true,
			KeyCtlScope:              "user",
		},
	}
	c.BackendType = backendType{&c}
	c.Backend.KeychainPasswordFunc = c.getPassword
	c.Backend.FilePasswordFunc = c.getPassword

	return &c, nil
}

// RegisterCommandLineFlags adds flags for every Config field to the default flag set.
func (c *Config) RegisterCommandLineFlags() {
	c.RegisterFlagSet(flag.CommandLine)
}

// RegisterFlagSet adds flags for every Config field to fs.
func (c *Config) RegisterFlagSet(fs *flag.FlagSet) {
	fs.StringVar(&c.Filename, "config", "", "TOML configuration `file`. Defaults to $"+EnvConfigFile+".")
	fs.StringVar(&c.BaseURL, "api-url", "", "TeslaMate API base `URL`. Defaults to $"+EnvBaseURL+".")
	fs.StringVar(&c.ClientID, "client-id", "", "Cloudflare Access client `ID`. Defaults to $"+EnvClientID+".")
	fs.StringVar(&c.SecretName, "secret-name", "", "System keyring `name` for the client secret. Defaults to $"+EnvSecretName+".")
	fs.StringVar(&c.Language, "lang", "", "Reply `language` (en, zh). Defaults to $"+EnvLanguage+".")
	fs.DurationVar(&c.Timeout, "api-timeout", 0, "Timeout for each API request. Defaults to $"+EnvTimeout+"; zero means none.")
	fs.Var(&c.Headers, "header", "Extra request header as `Name:Value` (can be repeated)")
	fs.BoolVar(&c.Verbose, "debug", false, "Enable verbose debugging messages")
	fs.StringVar(&c.LogFile, "log-file", "", "Write logs to `file` with rotation instead of stderr. Defaults to $"+EnvLogFile+".")

	var names []string
	for _, name := range keyring.AvailableBackends() {
		names = append(names, string(name))
	}
	sort.Strings(names)
	fs.Var(&c.BackendType, "keyring-type", "Keyring `type` ("+strings.Join(names, "|")+"). Defaults to $"+EnvKeyringType+".")
	fs.StringVar(&c.Backend.FileDir, "keyring-file-dir", "", "keyring `directory` for file-backed keyring types")
	fs.BoolVar(&c.Debug, "keyring-debug", false, "Enable keyring debug logging")
}

// RegisterTelegramFlags adds flags for the Telegram host to fs.
func (c *Config) RegisterTelegramFlags(fs *flag.FlagSet) {
	fs.Var(&c.Telegram.Whitelist, "whitelist", "Comma-separated Telegram chat `IDs` allowed to use the bot. Defaults to $"+EnvBotWhitelist+".")
	fs.StringVar(&c.Telegram.APIEndpoint, "bot-api", "", "Custom Telegram Bot API `URL`. Defaults to $"+EnvBotAPIEndpoint+".")
}

// ReadFromEnvironment populates c using environment variables. Values that are already populated
// are not overwritten.
//
// Calling ReadFromEnvironment after flag.Parse() and LoadFile() will prevent the environment from
// overriding explicit parameters and avoid potentially misleading debug log messages.
func (c *Config) ReadFromEnvironment() {
	if c.Filename == "" {
		c.Filename = os.Getenv(EnvConfigFile)
	}
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv(EnvBaseURL)
		log.Debug("Set API URL to '%s'", c.BaseURL)
	}
	if c.ClientID == "" {
		c.ClientID = os.Getenv(EnvClientID)
		log.Debug("Set client ID to '%s'", c.ClientID)
	}
	if c.ClientSecret == "" && c.SecretName == "" {
		c.ClientSecret = os.Getenv(EnvClientSecret)
		if c.ClientSecret != "" {
			log.Debug("Set client secret to %s", strings.Repeat("*", len("hunter2")))
		}
		c.SecretName = os.Getenv(EnvSecretName)
		log.Debug("Set secret name to '%s'", c.SecretName)
	}
	if c.Language == "" {
		c.Language = os.Getenv(EnvLanguage)
	}
	if c.Timeout == 0 {
		if value, ok := os.LookupEnv(EnvTimeout); ok {
			if timeout, err := parseTimeout(value); err == nil {
				c.Timeout = timeout
				log.Debug("Set API timeout to %s", c.Timeout)
			} else {
				log.Warning("Ignoring $%s: %s", EnvTimeout, err)
			}
		}
	}
	if !c.Verbose {
		if verbose, ok := os.LookupEnv(EnvVerbose); ok {
			c.Verbose = verbose != "false" && verbose != "0"
		}
	}
	if c.LogFile == "" {
		c.LogFile = os.Getenv(EnvLogFile)
	}

	if c.Telegram.BotToken == "" {
		c.Telegram.BotToken = os.Getenv(EnvBotToken)
	}
	if len(c.Telegram.Whitelist) == 0 {
		if err := c.Telegram.Whitelist.Set(os.Getenv(EnvBotWhitelist)); err != nil {
			log.Warning("Ignoring $%s: %s", EnvBotWhitelist, err)
			c.Telegram.Whitelist = nil
		}
	}
	if c.Telegram.APIEndpoint == "" {
		c.Telegram.APIEndpoint = os.Getenv(EnvBotAPIEndpoint)
	}

	if c.BackendType.String() == string(keyring.InvalidBackend) {
		if err := c.BackendType.Set(os.Getenv(EnvKeyringType)); err == nil {
			log.Debug("Set keyring type to '%s'", c.BackendType)
		}
	}
	if c.password == nil {
		password := os.Getenv(EnvKeyringPass)
		c.password = &password
		if len(password) > 0 {
			log.Debug("Set keyring File Password to %s", strings.Repeat("*", len("hunter2")))
		}
	}
	if c.Backend.FileDir == "" {
		c.Backend.FileDir = os.Getenv(EnvKeyringPath)
		if c.Backend.FileDir == "" {
			c.Backend.FileDir = keyringDirectory
		}
		log.Debug("Set keyring File Path to '%s'", c.Backend.FileDir)
	}
	if !c.Debug {
		_, c.Debug = os.LookupEnv(EnvKeyringDebug)
		log.Debug("Set keyring Debug Logging to '%v'", c.Debug)
	}
}

// parseTimeout accepts either a Go duration ("30s") or a whole number of seconds ("30").
func parseTimeout(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("%w: %s", ErrInvalidDuration, value)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	timeout, err := time.ParseDuration(value)
	if err != nil || timeout < 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidDuration, value)
	}
	return timeout, nil
}

// LoadCredentials loads the client secret from the system keyring if c names one and no secret was
// provided directly, prompting for the keyring password if needed. Call this method before the
// first dispatch to prevent interactive prompts from counting against timeouts.
func (c *Config) LoadCredentials() error {
	if c.ClientSecret != "" || c.SecretName == "" {
		return nil
	}
	secret, err := c.LoadSecretFromKeyring()
	if err != nil {
		return err
	}
	c.ClientSecret = secret
	return nil
}

// Validate checks that c contains everything needed to reach the API.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}
	return nil
}

// ValidateTelegram checks that c contains everything the Telegram host needs.
func (c *Config) ValidateTelegram() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return ErrNoBotToken
	}
	if len(c.Telegram.Whitelist) == 0 {
		return ErrEmptyWhitelist
	}
	return nil
}

// Telemetry returns the client configuration described by c. userAgent may be empty.
func (c *Config) Telemetry(userAgent string) teslamate.Config {
	return teslamate.Config{
		BaseURL:      c.BaseURL,
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Headers:      c.Headers,
		Timeout:      c.Timeout,
		UserAgent:    userAgent,
	}
}

// ConfigureLogging applies the log destination of c and sets the level to quiet, or to
// log.LevelDebug if c.Verbose is set.
func (c *Config) ConfigureLogging(quiet log.Level) {
	log.SetFile(c.LogFile)
	if c.Verbose {
		log.SetLevel(log.LevelDebug)
	} else {
		log.SetLevel(quiet)
	}
}
