// Package main is the courtbook command: it books a tennis or pickleball
// court on the SF Rec & Park reservation site with an LLM driving the browser.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"

	"github.com/entrhq/courtbook/pkg/artifact"
	"github.com/entrhq/courtbook/pkg/booking"
	"github.com/entrhq/courtbook/pkg/config"
	"github.com/entrhq/courtbook/pkg/console"
	"github.com/entrhq/courtbook/pkg/llm/tokenizer"
	"github.com/entrhq/courtbook/pkg/logging"
	"github.com/entrhq/courtbook/pkg/prompt"
	"github.com/entrhq/courtbook/pkg/semantic"
	"github.com/entrhq/courtbook/pkg/tools/browser"
)

const version = "0.1.0"

// flags holds the command line.
type flags struct {
	configPath  string
	overrides   config.Overrides
	verbosity   string
	plain       bool
	copyLiveURL bool
	showVersion bool
}

func main() {
	f := parseFlags()
	if f.showVersion {
		fmt.Printf("courtbook v%s\n", version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, f)
	stop()
	os.Exit(code)
}

func parseFlags() *flags {
	f := &flags{}

	flag.StringVar(&f.configPath, "config", "", "Path to config file (default: ~/.courtbook/config.yaml)")
	flag.StringVar(&f.overrides.Model, "model", "", "LLM model for page decisions")
	flag.StringVar(&f.overrides.BaseURL, "base-url", "", "OpenAI-compatible API base URL")
	flag.StringVar(&f.overrides.APIKey, "api-key", "", "LLM API key")
	flag.StringVar(&f.overrides.Browser, "browser", "", "Browser provider: browserbase or local")
	flag.StringVar(&f.overrides.ArtifactDir, "artifacts", "", "Directory for run reports (optional)")
	flag.BoolVar(&f.overrides.Debug, "debug", false, "Print model replies and debug output")
	flag.StringVar(&f.verbosity, "verbosity", "normal", "Console verbosity: quiet, normal, verbose, debug")
	flag.BoolVar(&f.plain, "plain", false, "Use line prompts instead of the interactive menus")
	flag.BoolVar(&f.copyLiveURL, "copy-live-url", false, "Copy the live view URL to the clipboard")
	flag.BoolVar(&f.showVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "courtbook - book an SF Rec & Park tennis or pickleball court\n\n")
		fmt.Fprintf(os.Stderr, "Usage: courtbook [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  %-24s Booking site login email\n", config.EnvEmail)
		fmt.Fprintf(os.Stderr, "  %-24s Booking site login password\n", config.EnvPassword)
		fmt.Fprintf(os.Stderr, "  %-24s Browserbase project\n", config.EnvBrowserbaseProjectID)
		fmt.Fprintf(os.Stderr, "  %-24s Browserbase API key\n", config.EnvBrowserbaseAPIKey)
		fmt.Fprintf(os.Stderr, "  %-24s LLM API key\n", config.EnvOpenAIKey)
		fmt.Fprintf(os.Stderr, "  %-24s Set to true for debug output\n", config.EnvDebug)
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  courtbook\n")
		fmt.Fprintf(os.Stderr, "  courtbook -browser local -plain\n")
		fmt.Fprintf(os.Stderr, "  courtbook -copy-live-url -artifacts ./runs\n")
	}

	flag.Parse()
	return f
}

func run(ctx context.Context, f *flags) int {
	cfg, err := config.Load(f.configPath, os.Getenv, f.overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to complete court booking: %v\n", err)
		return 1
	}

	level := console.ParseLevel(f.verbosity)
	if cfg.Debug {
		level = console.LevelDebug
	}
	out := console.Stdio(level)

	// A logger that could not open its file still writes to stderr.
	logger, logErr := logging.NewLogger("courtbook")
	defer logger.Close()
	if logErr == nil {
		out.Verbosef("Debug log: %s", logger.LogPath())
	}

	runner := &booking.Runner{
		Config:   cfg,
		Prompter: newPrompter(f.plain),
		Opener:   newOpener(cfg, out, logger),
		Reporter: out,
		Logger:   logger.With("runner"),
	}
	if f.copyLiveURL {
		runner.OnSessionStarted = func(s booking.Session) {
			copyLiveURL(out, s.LiveViewURL())
		}
	}

	result, err := runner.Run(ctx)
	writeArtifacts(cfg.ArtifactDir, result, out)

	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			out.Warningf("Booking cancelled")
		}
		fmt.Fprintf(os.Stderr, "💥 Failed to complete court booking: %v\n", err)
		return 1
	}
	out.Resultf("🎉 Tennis/paddle court booking completed successfully!")
	return 0
}

func newPrompter(plain bool) prompt.Provider {
	if plain || !isatty.IsTerminal(os.Stdin.Fd()) {
		return prompt.NewLine(os.Stdin, os.Stdout)
	}
	return prompt.NewTUI()
}

func copyLiveURL(out *console.Console, url string) {
	if url == "" {
		return
	}
	if err := clipboard.WriteAll(url); err != nil {
		out.Verbosef("Could not copy live view URL: %v", err)
		return
	}
	out.Infof("📋 Live view URL copied to clipboard")
}

func writeArtifacts(dir string, result *booking.Result, out *console.Console) {
	if dir == "" || result == nil {
		return
	}
	path, err := artifact.NewWriter(dir).WriteAll(result)
	if err != nil {
		out.Warningf("Failed to write run report: %v", err)
		return
	}
	out.Infof("📝 Run report: %s", path)
}

// providerOpener builds the LLM provider when the session is opened, after
// the runner has validated the configuration.
type providerOpener struct {
	cfg     config.Config
	manager *browser.SessionManager
	out     *console.Console
	logger  *logging.Logger
}

func newOpener(cfg config.Config, out *console.Console, logger *logging.Logger) *providerOpener {
	return &providerOpener{
		cfg:     cfg,
		manager: browser.NewSessionManager(),
		out:     out,
		logger:  logger,
	}
}

func (o *providerOpener) Open(ctx context.Context) (booking.Session, error) {
	provider, err := config.BuildProvider(o.cfg.LLM)
	if err != nil {
		return nil, err
	}
	o.out.Debugf("🤖 Model %s at %s", provider.GetModel(), provider.GetBaseURL())

	tok, err := tokenizer.New()
	if err != nil {
		o.logger.Warnf("exact token counting unavailable, estimating: %v", err)
		tok = &tokenizer.Tokenizer{}
	}

	opts := []semantic.Option{
		semantic.WithTokenizer(tok),
		semantic.WithLogger(o.logger.With("semantic")),
	}
	if o.cfg.LLM.SnapshotTokens > 0 {
		opts = append(opts, semantic.WithSnapshotTokens(o.cfg.LLM.SnapshotTokens))
	}
	if o.out.Level() >= console.LevelDebug {
		opts = append(opts, semantic.WithTrace(o.out.JSON))
	}

	return booking.NewBrowserOpener(o.manager, o.cfg, provider, opts...).Open(ctx)
}
