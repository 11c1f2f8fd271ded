// Package cli implements the chime command line interface.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	chime "chime.click"
	"chime.click/internal/source"
)

const Version = "1.3.0"

// TerminalDetector reports whether a file descriptor is an interactive
// terminal.
type TerminalDetector interface {
	IsTerminal(fd int) bool
}

type defaultTerminalDetector struct{}

func (defaultTerminalDetector) IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// CLI wires the playback backend and source resolver behind a cobra command.
type CLI struct {
	rootCmd    *cobra.Command
	fs         afero.Fs
	terminal   TerminalDetector
	newBackend func() (chime.Backend, error)
	backend    chime.Backend
}

// NewCLI creates a CLI with real collaborators.
func NewCLI() *CLI {
	c := &CLI{
		fs:         afero.NewOsFs(),
		terminal:   defaultTerminalDetector{},
		newBackend: chime.New,
	}

	rootCmd := &cobra.Command{
		Use:   "chime [flags] <sound>...",
		Short: "Play sound files through the operating system",
		Long: "Chime plays audio files and URLs through the OS-native sound facility:\n" +
			"MCI on Windows, NSSound on macOS and GStreamer on Linux.\n" +
			"With no arguments and piped input, sources are read line by line from stdin.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd, args)
		},
	}

	rootCmd.Flags().Bool("no-block", false, "Return once playback has started instead of waiting")
	rootCmd.Flags().Duration("timeout", 0, "Abort a blocking playback after this duration (0 = wait forever)")
	rootCmd.Flags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.Flags().Bool("log-file", false, "Also log to a rotating file under the state directory")
	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	c.rootCmd = rootCmd
	return c
}

// Run executes the CLI and returns a process exit code.
func (c *CLI) Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c.rootCmd.SetArgs(args[1:])
	c.rootCmd.SetIn(stdin)
	c.rootCmd.SetOut(stdout)
	c.rootCmd.SetErr(stderr)

	if err := c.rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		slog.Error("command failed", "error", err)
		return 1
	}
	return 0
}

func (c *CLI) runPlay(cmd *cobra.Command, args []string) error {
	if version, _ := cmd.Flags().GetBool("version"); version {
		cmd.Printf("chime version %s\nNative sound playback for the command line\n", Version)
		return nil
	}

	logLevel, _ := cmd.Flags().GetString("log-level")
	logFile, _ := cmd.Flags().GetBool("log-file")
	setupLogging(logLevel, logFile, cmd.ErrOrStderr())

	sources := args
	if len(sources) == 0 {
		if c.stdinIsTerminal(cmd.InOrStdin()) {
			return cmd.Usage()
		}
		var err error
		sources, err = readSources(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read sources from stdin: %w", err)
		}
		if len(sources) == 0 {
			return fmt.Errorf("no sources given")
		}
	}

	noBlock, _ := cmd.Flags().GetBool("no-block")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	backend, err := c.playbackBackend()
	if err != nil {
		return err
	}
	resolver := source.NewResolver(c.fs)

	for _, raw := range sources {
		if err := playOne(backend, resolver, raw, !noBlock, timeout); err != nil {
			return err
		}
	}
	return nil
}

func playOne(backend chime.Backend, resolver *source.Resolver, raw string, block bool, timeout time.Duration) error {
	resolved, err := resolver.Resolve(raw)
	if err != nil {
		return err
	}
	if !resolved.IsAudio() {
		slog.Warn("source does not look like audio", "source", resolved.Location, "mime", resolved.MIME)
	}

	ctx := context.Background()
	if block && timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	slog.Info("playing", "source", resolved.Location, "kind", resolved.Kind.String(), "block", block)
	return backend.Play(ctx, resolved.Location, block)
}

// playbackBackend resolves the backend once per CLI instance.
func (c *CLI) playbackBackend() (chime.Backend, error) {
	if c.backend != nil {
		return c.backend, nil
	}
	backend, err := c.newBackend()
	if err != nil {
		return nil, err
	}
	c.backend = backend
	return backend, nil
}

func (c *CLI) stdinIsTerminal(stdin io.Reader) bool {
	f, ok := stdin.(*os.File)
	return ok && c.terminal.IsTerminal(int(f.Fd()))
}

// readSources reads newline-separated sources, skipping blank lines.
func readSources(r io.Reader) ([]string, error) {
	var sources []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			sources = append(sources, line)
		}
	}
	return sources, scanner.Err()
}
