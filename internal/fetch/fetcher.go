package fetch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"krimiwiki/internal/logging"
)

// Fetcher stores the resource at url in the file dest.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onOutput func(string)) error
}

// Option configures a CommandFetcher.
type Option func(*CommandFetcher)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(f *CommandFetcher) {
		if exec != nil {
			f.exec = exec
		}
	}
}

// WithLogger sets the logger that receives the command line and its output.
func WithLogger(logger *slog.Logger) Option {
	return func(f *CommandFetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// CommandFetcher downloads with an external utility invoked as
// "<binary> -s -f -o <file> <url>".
type CommandFetcher struct {
	binary  string
	timeout time.Duration
	exec    Executor
	logger  *slog.Logger
}

var _ Fetcher = (*CommandFetcher)(nil)

// NewCommandFetcher constructs a subprocess based fetcher.
func NewCommandFetcher(binary string, timeout time.Duration, opts ...Option) (*CommandFetcher, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("fetch command required")
	}
	f := &CommandFetcher{
		binary:  binary,
		timeout: timeout,
		exec:    commandExecutor{},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch downloads url to dest. The file only appears once the download
// completed successfully.
func (f *CommandFetcher) Fetch(ctx context.Context, url, dest string) error {
	if dest == "" {
		return errors.New("destination file required")
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	partial := dest + ".part"
	args := []string{"-s", "-f", "-o", partial, url}
	f.logger.Info("fetching page",
		logging.String("command", f.binary+" "+strings.Join(args, " ")),
		logging.String("url", url))

	err := f.exec.Run(ctx, f.binary, args, func(line string) {
		f.logger.Debug("fetch output", logging.String("line", line))
	})
	if err != nil {
		_ = os.Remove(partial)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s %s: exit code %d", f.binary, url, exitErr.ExitCode())
		}
		return fmt.Errorf("%s %s: %w", f.binary, url, err)
	}
	if err := os.Rename(partial, dest); err != nil {
		_ = os.Remove(partial)
		return fmt.Errorf("rename download: %w", err)
	}
	return nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onOutput func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if onOutput != nil {
				onOutput(scanner.Text())
			}
		}
	}
	wg.Add(2)
	go scan(stdout)
	go scan(stderr)
	wg.Wait()

	return cmd.Wait()
}
