package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/console"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run executes the configured mode reading player input from in and writing to out.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	switch conf.Mode {
	case config.ModeSpar:
		chooser := newChooser(conf.Sparring.Seed)
		sparring := service.NewSparringService(logger, service.NewBotService(chooser), chooser)

		log.Info("Starting sparring", "games", conf.Sparring.Games, "seed", conf.Sparring.Seed)
		stats, err := sparring.Run(ctx, conf.Sparring.Games)
		if errors.Is(err, context.Canceled) {
			log.Info("Sparring stopped early", "games", stats.Games)
		} else if err != nil {
			return fmt.Errorf("sparring failed: %w", err)
		}

		if _, err = fmt.Fprintln(out, stats.String()); err != nil {
			return fmt.Errorf("failed to write stats: %w", err)
		}

		return nil
	case config.ModePlay:
		gameManager := usecase.NewGameManager(logger, pkg.IDGenerator{}, gameOptions(conf)...)

		log.Info("Starting console")
		if err := console.New(logger, gameManager).Start(ctx, in, out); err != nil {
			return fmt.Errorf("console error: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownMode, conf.Mode)
	}
}

func gameOptions(conf *config.Config) []tictactoe.Option {
	switch conf.FirstPlayer {
	case config.FirstPlayerHuman:
		return []tictactoe.Option{tictactoe.WithFirstTurn(tictactoe.AwaitingHuman)}
	case config.FirstPlayerComputer:
		return []tictactoe.Option{tictactoe.WithFirstTurn(tictactoe.AwaitingComputer)}
	default:
		return nil
	}
}

func newChooser(seed int64) tictactoe.Chooser {
	if seed == 0 {
		return tictactoe.DefaultChooser()
	}

	return rand.New(rand.NewSource(seed)) //nolint: gosec // it's ok
}
