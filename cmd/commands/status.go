package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/example/taskrecap/internal/config"
	"github.com/example/taskrecap/internal/heartbeat"
)

// NewStatusCommand returns the status subcommand.
func NewStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show whether the bot daemon is running",
		Action: func(_ context.Context, _ *cli.Command) error {
			hbPath := filepath.Join(config.BasePath(), "heartbeat.json")
			status, b, err := heartbeat.Check(hbPath, 2*time.Minute)
			if err != nil {
				return fmt.Errorf("check heartbeat: %w", err)
			}

			switch status {
			case heartbeat.StatusAlive:
				fmt.Printf("Bot: ALIVE (PID %d, uptime %s)\n", b.PID, b.Uptime)
			case heartbeat.StatusStale:
				fmt.Printf("Bot: STALE (PID %d, last beat %s ago)\n",
					b.PID, time.Since(b.BeatAt).Truncate(time.Second))
			case heartbeat.StatusDead:
				fmt.Println("Bot: NOT RUNNING")
			}
			return nil
		},
	}
}
