package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/example/taskrecap/internal/config"
	"github.com/example/taskrecap/internal/gateway"
	"github.com/example/taskrecap/internal/heartbeat"
	"github.com/example/taskrecap/internal/scheduler"
	"github.com/example/taskrecap/internal/telegram"
)

// NewBotCommand returns the daemon subcommand.
func NewBotCommand() *cli.Command {
	return &cli.Command{
		Name:  "bot",
		Usage: "Run the Telegram bot, the status gateway and the reminder",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Gateway host to listen on",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Gateway port to listen on",
			},
		},
		Action: runBot,
	}
}

func runBot(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is not configured")
	}

	// CLI flags override config
	if cmd.IsSet("host") {
		cfg.Gateway.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Gateway.Port = cmd.Int("port")
	}

	runner, store, err := buildRunner(ctx, cfg)
	if err != nil {
		return err
	}

	channel, err := telegram.NewChannel(cfg.Telegram, runner, store)
	if err != nil {
		return err
	}

	server := gateway.NewServer(cfg.Gateway, store)

	hb := heartbeat.NewWriter(filepath.Join(config.BasePath(), "heartbeat.json"))
	go hb.Run(ctx)

	errCh := make(chan error, 3)
	go func() { errCh <- server.Start() }()
	go func() { errCh <- channel.Start(ctx) }()

	if cfg.Reminder.Schedule != "" {
		reminder, err := scheduler.NewReminder(cfg.Reminder, store, channel)
		if err != nil {
			return fmt.Errorf("setup reminder: %w", err)
		}
		go func() { errCh <- reminder.Run(ctx) }()
	}

	slog.Info("bot is up")

	select {
	case <-ctx.Done():
		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
