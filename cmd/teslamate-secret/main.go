// Utility for storing the TeslaMate API client secret

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/teslamate-tools/teslamate-query/pkg/cli"
)

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintf(w, "usage: %s [-secret-name secret_name] [-delete] [file|-]\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Reads a Cloudflare Access client secret from the terminal, stdin (-) or file and saves")
	fmt.Fprintf(w, "it under secret_name in the system keyring. The secret_name defaults to $%s.\n\n", cli.EnvSecretName)
	flag.PrintDefaults()
}

func readSecret() (string, error) {
	switch flag.NArg() {
	case 0:
		return cli.ReadSecret("Client secret")
	case 1:
		var (
			secret []byte
			err    error
		)
		if flag.Arg(0) == "-" {
			secret, err = io.ReadAll(os.Stdin)
		} else {
			secret, err = os.ReadFile(flag.Arg(0))
		}
		return strings.TrimSpace(string(secret)), err
	}
	return "", fmt.Errorf("too many command-line arguments")
}

func main() {
	returnCode := 1
	defer func() {
		os.Exit(returnCode)
	}()

	config, err := cli.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load credential configuration: %s\n", err)
		return
	}

	var remove bool
	flag.StringVar(&config.SecretName, "secret-name", "", "Name to use for keyring entry")
	flag.BoolVar(&remove, "delete", false, "Remove the keyring entry instead of writing it")
	flag.Var(&config.BackendType, "keyring-type", "Keyring `type`. Defaults to $"+cli.EnvKeyringType+".")
	flag.StringVar(&config.Backend.FileDir, "keyring-file-dir", "", "keyring `directory` for file-backed keyring types")
	flag.Usage = usage
	flag.Parse()
	config.ReadFromEnvironment()

	if config.SecretName == "" {
		fmt.Fprintf(os.Stderr, "Must provide system keyring name to save the client secret under using -secret-name or $%s\n", cli.EnvSecretName)
		return
	}

	if remove {
		if err := config.DeleteSecret(); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing secret from keyring: %s\n", err)
			return
		}
		returnCode = 0
		return
	}

	secret, err := readSecret()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading secret: %s\n", err)
		return
	}
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Refusing to save an empty secret")
		return
	}

	if err := config.SaveSecretToKeyring(secret); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving secret to keyring: %s\n", err)
		return
	}

	returnCode = 0
}
