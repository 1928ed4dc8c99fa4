package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/99designs/keyring"
	"golang.org/x/term"
)

const (
	keyringServiceName   = "com.teslamate.query"
	keyringSecretService = "clientSecret"
	keyringDirectory     = "~/.teslamate_keys"
)

type backendType struct {
	config *Config
}

func (b backendType) String() string {
	if b.config == nil || len(b.config.Backend.AllowedBackends) == 0 {
		return string(keyring.InvalidBackend)
	}
	return string(b.config.Backend.AllowedBackends[0])
}

func (b backendType) Set(v string) error {
	value := keyring.BackendType(v)
	if b.config == nil {
		return fmt.Errorf("invalid backendType")
	}
	if v == "" {
		return nil
	}
	for _, name := range keyring.AvailableBackends() {
		if name == value {
			b.config.Backend.AllowedBackends = []keyring.BackendType{name}
			return nil
		}
	}
	return fmt.Errorf("unsupported credential storage")
}

// promptWriter returns whichever of stdout and stderr is a terminal.
func promptWriter() (io.Writer, error) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return os.Stdout, nil
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return os.Stderr, nil
	}
	return nil, fmt.Errorf("no terminal output available for password prompt")
}

// ReadSecret prompts for a value on the terminal without echoing it.
func ReadSecret(prompt string) (string, error) {
	w, err := promptWriter()
	if err != nil {
		return "", err
	}
	fmt.Fprintf(w, "%s: ", prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(w)
	return strings.TrimSpace(string(b)), nil
}

func (c *Config) getPassword(prompt string) (string, error) {
	if c.password != nil && *c.password != "" {
		return *c.password, nil
	}
	password, err := ReadSecret(prompt)
	if err != nil {
		return "", err
	}
	c.password = &password
	return password, nil
}

func (c *Config) openKeyring() (keyring.Keyring, error) {
	keyring.Debug = c.Debug
	return keyring.Open(c.Backend)
}

func (c *Config) fullSecretName() string {
	return keyringSecretService + "." + c.SecretName
}

// LoadSecretFromKeyring loads the client secret from the system keyring.
//
// The c.SecretName must match the value used with SaveSecretToKeyring.
func (c *Config) LoadSecretFromKeyring() (string, error) {
	if c.SecretName == "" {
		return "", ErrNoSecretName
	}
	kr, err := c.openKeyring()
	if err != nil {
		return "", err
	}

	item, err := kr.Get(c.fullSecretName())
	if err != nil {
		return "", fmt.Errorf("could not load client secret: %w", err)
	}
	return string(item.Data), nil
}

// SaveSecretToKeyring writes the client secret to the system keyring under c.SecretName.
func (c *Config) SaveSecretToKeyring(secret string) error {
	if c.SecretName == "" {
		return ErrNoSecretName
	}
	kr, err := c.openKeyring()
	if err != nil {
		return err
	}

	if err := kr.Set(keyring.Item{
		Key:   c.fullSecretName(),
		Label: "TeslaMate API client secret (" + c.SecretName + ")",
		Data:  []byte(secret),
	}); err != nil {
		return fmt.Errorf("failed to enroll client secret in keyring: %w", err)
	}
	return nil
}

// DeleteSecret removes the client secret from the system keyring.
func (c *Config) DeleteSecret() error {
	if c.SecretName == "" {
		return ErrNoSecretName
	}
	kr, err := c.openKeyring()
	if err != nil {
		return err
	}
	return kr.Remove(c.fullSecretName())
}
