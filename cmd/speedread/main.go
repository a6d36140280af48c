// Package main provides the CLI entrypoint for speedread.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/speedread/internal/config"
	"github.com/verte-zerg/speedread/internal/evaluate"
	"github.com/verte-zerg/speedread/internal/logging"
	"github.com/verte-zerg/speedread/internal/model"
	"github.com/verte-zerg/speedread/internal/rate"
	"github.com/verte-zerg/speedread/internal/scheduler"
	"github.com/verte-zerg/speedread/internal/stats"
	"github.com/verte-zerg/speedread/internal/tokenize"
	"github.com/verte-zerg/speedread/internal/tui"
)

var errEmptyInput = errors.New("input text is empty")

var (
	readFile   string
	readWPM    int
	initConfig bool
	initForce  bool
	offline    bool
	debugLog   bool
)

// session holds the interactive steps of a read so tests can replace them.
type session struct {
	play          func(context.Context, tui.PlayOptions) (model.Result, error)
	promptSummary func() (string, error)
	runEvaluation func(context.Context, evaluate.Client, evaluate.Request) (string, error)
	newEvaluator  func(model.Config) (evaluate.Client, error)
}

func terminalSession() session {
	return session{
		play: tui.Play,
		promptSummary: func() (string, error) {
			return tui.PromptSummary()
		},
		runEvaluation: func(ctx context.Context, c evaluate.Client, req evaluate.Request) (string, error) {
			return tui.RunEvaluation(ctx, c, req)
		},
		newEvaluator: newEvaluator,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(terminalSession())
}

func newRootCmdWith(s session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "speedread",
		Short:         "Terminal speed reader with comprehension check",
		Long:          "Shows text one word at a time at a set pace, then asks for a summary and grades it with a language model.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          s.runReadCmd,
	}

	rootCmd.Flags().StringVarP(&readFile, "file", "f", "", "text file to read (default: stdin)")
	rootCmd.Flags().IntVar(&readWPM, "wpm", 0, fmt.Sprintf("words per minute, clamped to %d-%d (default: config wpm)", config.MinFlagWPM, config.MaxFlagWPM))
	rootCmd.Flags().BoolVar(&initConfig, "init-config", false, "write the default config file and exit")
	rootCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config with --init-config")
	rootCmd.Flags().BoolVar(&offline, "offline", false, "skip the network call and use a canned evaluation")
	rootCmd.Flags().BoolVar(&debugLog, "debug", false, "log at debug level")

	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func (s session) runReadCmd(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if initConfig {
		path := config.DefaultConfigPath()
		if err := config.WriteDefault(path, initForce); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "Wrote default config to %s\n", path)
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	text, err := readInput(cmd.InOrStdin(), readFile)
	if err != nil {
		return err
	}
	units := tokenize.Tokenize(text)
	if len(units) == 0 {
		return errEmptyInput
	}

	logger, err := logging.New(config.DefaultLogPath(), cfg.Debug)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		logger = logging.Nop()
	}
	defer func() {
		_ = logger.Sync()
	}()
	logger.Infow("session starting", "words", len(units), "wpm", cfg.WPM, "step", cfg.WPMStep, "model", cfg.Model)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	engine := scheduler.New(
		scheduler.WithLogger(logger),
		scheduler.WithCountdown(cfg.Countdown),
	)
	res, err := s.play(ctx, tui.PlayOptions{
		Units:     units,
		Rate:      rate.New(cfg.WPM, cfg.WPMStep),
		Keys:      cfg.Keys,
		Engine:    engine,
		Logger:    logger,
		AltScreen: true,
	})
	if err != nil {
		logger.Errorw("session failed", "error", err)
		return fmt.Errorf("failed to run reader: %w", err)
	}

	if err := stats.RenderReport(out, stats.BuildReport(res), stats.TerminalWidth()); err != nil {
		return err
	}
	if res.Mode != model.ModeFinished {
		return nil
	}
	return s.finalize(ctx, out, cfg, logger, text, res)
}

// finalize collects the summary and prints the evaluation. Failures here are
// reported but never change the exit status.
func (s session) finalize(ctx context.Context, out io.Writer, cfg model.Config, logger *zap.SugaredLogger, text string, res model.Result) error {
	summary, err := s.promptSummary()
	if err != nil {
		logger.Errorw("summary prompt failed", "error", err)
		_, werr := fmt.Fprintf(out, "Evaluation failed: %v\n", err)
		return werr
	}
	if summary == "" {
		_, err := fmt.Fprintln(out, "No summary provided.")
		return err
	}

	client, err := s.newEvaluator(cfg)
	if err == nil {
		var verdict string
		req := evaluate.Request{Text: text, Summary: summary, WPM: res.FinalWPM}
		verdict, err = s.runEvaluation(ctx, client, req)
		if err == nil {
			logger.Infow("evaluation finished", "model", cfg.Model, "chars", len(verdict))
			_, werr := fmt.Fprintf(out, "\nEvaluation:\n%s\n", verdict)
			return werr
		}
	}
	logger.Errorw("evaluation failed", "model", cfg.Model, "error", err)
	_, werr := fmt.Fprintf(out, "Evaluation failed: %v\n", err)
	return werr
}

func newEvaluator(cfg model.Config) (evaluate.Client, error) {
	if offline {
		return evaluate.NewStubClient(), nil
	}
	return evaluate.NewOpenRouterClient(evaluate.Settings{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.APIBaseURL,
		Model:   cfg.Model,
		Timeout: cfg.RequestTimeout,
	})
}

func loadConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return model.Config{}, err
	}
	cfg, err := config.Resolve(fileCfg, envCfg)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if cmd.Flags().Changed("wpm") {
		wpm, err := config.ClampFlagWPM(readWPM)
		if err != nil {
			return model.Config{}, err
		}
		cfg.WPM = wpm
	}
	if debugLog {
		cfg.Debug = true
	}
	return cfg, nil
}

func readInput(in io.Reader, path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("no input: pass --file or pipe text on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := config.WriteDefault(path, false); err != nil && !errors.Is(err, config.ErrConfigExists) {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
