// Command vxtract pulls one Vertica table out as a NATIVE-format
// bulk-load file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"golang.org/x/term"

	"github.com/joeygibson/vxtract/internal/extract"
	"github.com/joeygibson/vxtract/internal/vertica"
	"github.com/joeygibson/vxtract/pkg/verrors"
	"github.com/joeygibson/vxtract/pkg/vlog"
)

// options is the flag table from spec.md §6, expressed as go-flags
// struct tags: short/long aliases, defaults, and required markers.
type options struct {
	Server   string `short:"s" long:"server" default:"localhost" description:"server host"`
	Port     int    `short:"p" long:"port" default:"5433" description:"TCP port"`
	Database string `short:"d" long:"database" required:"true" description:"database name"`
	Username string `short:"u" long:"username" default:"dbadmin" description:"login user"`
	Password string `short:"P" long:"password" description:"password (prompted if omitted)"`
	Table    string `short:"t" long:"table" required:"true" description:"source table"`
	Output   string `short:"o" long:"output" required:"true" description:"destination file path"`
	Limit    int64  `short:"l" long:"limit" description:"row cap (unlimited if omitted)"`
	Force    bool   `short:"f" long:"force" description:"overwrite existing output"`
	Verbose  bool   `short:"v" long:"verbose" description:"enable debug logging"`
}

func main() {
	os.Exit(run())
}

func run() int {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "extract a Vertica table to a NATIVE-format bulk-load file"

	if _, err := parser.Parse(); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return 0
		}
		printError(err)
		return 2
	}

	if _, err := os.Stat(opts.Output); err == nil && !opts.Force {
		printError(verrors.Newf(verrors.ErrCodeOutputExists, "output %q already exists; use --force to overwrite", opts.Output))
		return 1
	}

	if opts.Password == "" {
		pw, err := promptPassword()
		if err != nil {
			printError(fmt.Errorf("reading password: %w", err))
			return 2
		}
		opts.Password = pw
	}

	logger := vlog.New(vlog.Config{Level: vlog.LevelInfo})
	if opts.Verbose {
		logger.SetLevel(vlog.LevelDebug)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	out, err := os.Create(opts.Output)
	if err != nil {
		printError(fmt.Errorf("creating output file: %w", err))
		return 1
	}
	defer out.Close()

	cfg := vertica.Config{
		Server:   opts.Server,
		Port:     opts.Port,
		Database: opts.Database,
		Username: opts.Username,
		Password: opts.Password,
	}

	logger.Info(vlog.CategoryConnect, "connecting", "server", opts.Server, "port", opts.Port, "database", opts.Database)
	db, err := vertica.Open(ctx, cfg)
	if err != nil {
		printError(err)
		return 1
	}
	defer db.Close()

	session := extract.NewSession(db, opts.Table, opts.Limit, out, logger)

	result, err := session.Run(ctx)
	if err != nil {
		printError(err)
		return 1
	}

	fmt.Printf("wrote %d rows (%d bytes) to %s\n", result.Rows, result.Bytes, opts.Output)
	return 0
}

// promptPassword reads a password from the controlling terminal with
// echo disabled. On a non-interactive stdin (no TTY — e.g. piped
// input in a script or CI job) it returns an empty password instead
// of blocking forever waiting for input that will never arrive.
func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func printError(err error) {
	color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
}
