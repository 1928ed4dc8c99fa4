package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/teslamate-tools/teslamate-query/internal/log"
)

// fileConfig mirrors the TOML configuration file:
//
//	[teslamate]
//	api_url = "https://teslamate.example.com"
//	client_id = "0123.access"
//	secret_name = "home"   # or client_secret = "..."
//	language = "zh"
//	timeout = 30           # seconds
//	log_file = "/var/log/teslamate-query.log"
//
//	[teslamate.headers]
//	X-Extra = "value"
//
//	[telegram]
//	bot_token = "123:abc"
//	whitelist_chat_ids = [12345678]
//	api_endpoint = ""
type fileConfig struct {
	TeslaMate struct {
		APIURL       string            `toml:"api_url"`
		ClientID     string            `toml:"client_id"`
		ClientSecret string            `toml:"client_secret"`
		SecretName   string            `toml:"secret_name"`
		Language     string            `toml:"language"`
		Timeout      int               `toml:"timeout"`
		Headers      map[string]string `toml:"headers"`
		LogFile      string            `toml:"log_file"`
	} `toml:"teslamate"`
	Telegram struct {
		BotToken         string  `toml:"bot_token"`
		WhitelistChatIDs []int64 `toml:"whitelist_chat_ids"`
		APIEndpoint      string  `toml:"api_endpoint"`
	} `toml:"telegram"`
}

// LoadFile fills in fields of c that are still empty from the TOML file c.Filename. It does
// nothing if c.Filename is empty.
func (c *Config) LoadFile() error {
	if c.Filename == "" {
		return nil
	}
	log.Debug("Loading configuration from %s...", c.Filename)
	data, err := os.ReadFile(c.Filename)
	if err != nil {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}
	return c.decodeFile(data)
}

func (c *Config) decodeFile(data []byte) error {
	var file fileConfig
	meta, err := toml.Decode(string(data), &file)
	if err != nil {
		var parseErr toml.ParseError
		if errors.As(err, &parseErr) {
			return fmt.Errorf("invalid configuration file: %s", parseErr.ErrorWithPosition())
		}
		return fmt.Errorf("invalid configuration file: %w", err)
	}
	for _, key := range meta.Undecoded() {
		log.Warning("Unknown configuration key '%s'", key)
	}

	tm := file.TeslaMate
	if tm.Timeout < 0 {
		return fmt.Errorf("%w: teslamate.timeout must not be negative", ErrInvalidDuration)
	}
	setString(&c.BaseURL, tm.APIURL)
	setString(&c.ClientID, tm.ClientID)
	if c.ClientSecret == "" && c.SecretName == "" {
		c.ClientSecret = tm.ClientSecret
		c.SecretName = tm.SecretName
	}
	setString(&c.Language, tm.Language)
	setString(&c.LogFile, tm.LogFile)
	if c.Timeout == 0 {
		c.Timeout = secondsToDuration(tm.Timeout)
	}
	for name, value := range tm.Headers {
		if _, ok := c.Headers[name]; ok {
			continue
		}
		if c.Headers == nil {
			c.Headers = make(HeaderList)
		}
		c.Headers[name] = value
	}

	tg := file.Telegram
	setString(&c.Telegram.BotToken, tg.BotToken)
	setString(&c.Telegram.APIEndpoint, tg.APIEndpoint)
	if len(c.Telegram.Whitelist) == 0 {
		c.Telegram.Whitelist = append(ChatList(nil), tg.WhitelistChatIDs...)
	}
	return nil
}

func setString(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
