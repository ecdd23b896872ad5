package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"codeberg.org/mutker/sysmon/internal/config"
	"codeberg.org/mutker/sysmon/internal/errors"
	"codeberg.org/mutker/sysmon/internal/history"
	"codeberg.org/mutker/sysmon/internal/logger"
	"codeberg.org/mutker/sysmon/internal/monitor"
	"codeberg.org/mutker/sysmon/internal/platform"
	"codeberg.org/mutker/sysmon/internal/render"
	"codeberg.org/mutker/sysmon/internal/tui"
)

const terminatePrompt = "\nCtrl-C detected: terminate? (y/yes to terminate, anything else to continue): "

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		return 1
	}
	closer, err := logger.Init(logger.Options{
		Level:   level,
		File:    cfg.LogFile,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	})
	defer closer.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		return 1
	}
	logger.Debug().Str("file", cfg.ConfigFile).Msg("Config loaded")

	for _, c := range cfg.Corrections {
		logger.Default().WarnWithCode(c).Msg("Invalid setting replaced with default")
	}

	raw, err := platform.New(cfg.Backend)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize platform source")
		return 1
	}
	src := platform.NewResilient(raw, logger.Default().With("platform"))

	hcfg := history.DefaultConfig()
	hcfg.Size = cfg.History
	store, err := history.NewService(hcfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize history")
		return 1
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := monitor.Options{
		Samples:  cfg.Samples,
		Interval: cfg.Interval(),
		History:  store,
		Logger:   logger.Default().With("monitor"),
	}

	// signals are registered before sampling starts
	ignoreStop()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	// bubbletea reads Ctrl-C as a key, so only the text view prompts
	confirm := !cfg.TUI && isatty.IsTerminal(os.Stdin.Fd())
	go handleSignals(ctx, cancel, sigs, confirm, os.Stdin, os.Stdout)

	if cfg.TUI {
		err = runTUI(ctx, cancel, cfg, opts, src, store)
	} else {
		err = runText(ctx, cfg, opts, src)
	}

	switch {
	case err == nil:
		logger.Info().Msg("Exiting...")
		return 0
	case errors.IsCode(err, errors.ErrCanceled):
		logger.Info().Msg("Terminated by user")
		return 0
	default:
		var coded errors.Error
		if errors.As(err, &coded) {
			logger.ErrorWithCode(coded).Err(err).Msg("monitoring run failed")
		} else {
			logger.Error().Err(err).Msg("monitoring run failed")
		}
		return 1
	}
}

func runText(ctx context.Context, cfg *config.Config, opts monitor.Options, src platform.Source) error {
	cores, _ := src.CPUCount(ctx)

	sink := render.NewText(os.Stdout, render.Options{
		Samples:    cfg.Samples,
		Delay:      cfg.Delay,
		Sequential: cfg.Sequential,
		Graphics:   cfg.Graphics,
		ShowSystem: cfg.ShowSystem(),
		ShowUsers:  cfg.ShowUsers(),
		CPUCount:   cores,
		MaxRSS:     platform.SelfMaxRSSKB,
	})

	if err := monitor.Run(ctx, opts, src, sink); err != nil {
		return err
	}

	info, _ := src.SystemInfo(ctx)
	up, _ := src.Uptime(ctx)
	return render.Footer(os.Stdout, render.SystemInfo(info, up))
}

func runTUI(
	ctx context.Context, cancel context.CancelFunc, cfg *config.Config,
	opts monitor.Options, src platform.Source, hist history.Reader,
) error {
	cores, _ := src.CPUCount(ctx)
	info, _ := src.SystemInfo(ctx)
	up, _ := src.Uptime(ctx)

	model := tui.New(tui.Options{
		Samples:  cfg.Samples,
		Interval: opts.Interval,
		CPUCount: cores,
		Info:     info,
		Uptime:   up,
	}, hist, cancel)
	p := tea.NewProgram(model, tea.WithAltScreen())

	runErr := make(chan error, 1)
	go func() {
		err := monitor.Run(ctx, opts, src, tui.NewSink(p))
		p.Send(tui.DoneMsg{Err: err})
		runErr <- err
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-runErr
		return errors.New().Wrap(errors.ErrRenderFailed, err)
	}
	// the program may quit on a key press before the run has been joined
	cancel()
	if err := <-runErr; err != nil {
		return err
	}

	up, _ = src.Uptime(context.Background())
	return render.Footer(os.Stdout, render.SystemInfo(info, up))
}

// handleSignals turns SIGINT or SIGTERM into a canceled run. With confirm
// set, SIGINT first asks on out and only cancels on a yes read from in.
func handleSignals(
	ctx context.Context, cancel context.CancelFunc, sigs <-chan os.Signal,
	confirm bool, in io.Reader, out io.Writer,
) {
	answers := bufio.NewReader(in)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigs:
			if sig == syscall.SIGINT && confirm {
				fmt.Fprint(out, terminatePrompt)
				line, err := answers.ReadString('\n')
				if err == nil && !confirmed(line) {
					continue
				}
			}
			logger.Info().Str("signal", sig.String()).Msg("Received termination signal.")
			cancel()
			return
		}
	}
}

func confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
