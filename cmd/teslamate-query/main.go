package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/teslamate-tools/teslamate-query/internal/log"
	"github.com/teslamate-tools/teslamate-query/pkg/cli"
	"github.com/teslamate-tools/teslamate-query/pkg/dispatch"
	"github.com/teslamate-tools/teslamate-query/pkg/report"
	"github.com/teslamate-tools/teslamate-query/pkg/teslamate"
)

func writeErr(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintf(os.Stderr, "\n")
}

const usage = `
 * Requests carry the Cloudflare Access headers built from -client-id and the client secret.
 * The client secret is read from $TESLAMATE_CLIENT_SECRET or from the system keyring entry named
   by -secret-name (see teslamate-secret).
 * Omit COMMAND to start an interactive shell.`

func Usage() {
	fmt.Printf("Usage: %s [OPTION...] [COMMAND]\n", os.Args[0])
	fmt.Println(usage)
	fmt.Println("")

	fmt.Printf("Available OPTIONs:\n")
	flag.PrintDefaults()
	fmt.Println("")
	fmt.Printf("Available COMMANDs:\n")
	maxLength := 0
	tokens := dispatch.Tokens()
	for _, token := range tokens {
		if len(token) > maxLength {
			maxLength = len(token)
		}
	}
	for _, token := range tokens {
		fmt.Printf("  %s%s %s\n", token, strings.Repeat(" ", maxLength-len(token)), report.English.HelpCommands[token])
	}
}

// textEditor "edits" a message by printing its final text.
type textEditor struct {
	w io.Writer
}

func (e textEditor) Edit(_ context.Context, text string) error {
	_, err := fmt.Fprintln(e.w, text)
	return err
}

func runCommand(d *dispatch.Dispatcher, w io.Writer, args []string, timeout time.Duration) int {
	if len(args) != 1 {
		writeErr("Expected exactly one command, got %d arguments", len(args))
		return 1
	}
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := d.Dispatch(ctx, textEditor{w}, args[0]); err != nil {
		writeErr("Failed to write reply: %s", err)
		return 1
	}
	return 0
}

func runInteractiveShell(d *dispatch.Dispatcher, r io.Reader, w io.Writer, timeout time.Duration) int {
	scanner := bufio.NewScanner(r)
	for fmt.Fprintf(w, "> "); scanner.Scan(); fmt.Fprintf(w, "> ") {
		args, err := shlex.Split(scanner.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			return 0
		}
		if err != nil {
			writeErr("Invalid command: %s", err)
			continue
		}
		runCommand(d, w, args, timeout)
	}
	if err := scanner.Err(); err != nil {
		writeErr("Error reading command: %s", err)
		return 1
	}
	return 0
}

func main() {
	status := 1
	defer func() {
		log.Sync()
		os.Exit(status)
	}()

	var commandTimeout time.Duration
	config, err := cli.NewConfig()
	if err != nil {
		writeErr("Failed to load configuration: %s", err)
		return
	}
	flag.Usage = Usage
	flag.DurationVar(&commandTimeout, "command-timeout", 0, "Set timeout for each command, including vehicle lookup. Zero means none.")

	config.RegisterCommandLineFlags()
	flag.Parse()
	if err := config.LoadFile(); err != nil {
		writeErr("Error: %s", err)
		return
	}
	config.ReadFromEnvironment()
	config.ConfigureLogging(log.LevelError)

	if err := config.Validate(); err != nil {
		writeErr("Missing required flag: %s", err)
		return
	}
	if err := config.LoadCredentials(); err != nil {
		writeErr("Error loading credentials: %s", err)
		return
	}

	client, err := teslamate.New(config.Telemetry(""))
	if err != nil {
		writeErr("Error: %s", err)
		return
	}
	d := dispatch.New(client, report.CatalogFor(config.Language), dispatch.CommandName)

	if flag.NArg() > 0 {
		status = runCommand(d, os.Stdout, flag.Args(), commandTimeout)
	} else {
		status = runInteractiveShell(d, os.Stdin, os.Stdout, commandTimeout)
	}
}
