package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

// NewAskCommand returns the one-shot agent subcommand. It talks to the same
// thread the bot uses, so a CLI question sees the chat history.
func NewAskCommand() *cli.Command {
	return &cli.Command{
		Name:      "ask",
		Usage:     "Send a message to the task agent and print the response",
		ArgsUsage: "<message>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "from",
				Usage: "Speaker name prefixed to the message, like the bot does for chat users",
			},
		},
		Action: runAsk,
	}
}

func runAsk(ctx context.Context, cmd *cli.Command) error {
	message := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if message == "" {
		return fmt.Errorf("usage: taskrecap ask <message>")
	}
	if from := cmd.String("from"); from != "" {
		message = fmt.Sprintf("%s: %s", from, message)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runner, _, err := buildRunner(ctx, cfg)
	if err != nil {
		return err
	}

	answer, err := runner.Run(ctx, message)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}
