package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/example/taskrecap/internal/sheet"
)

// NewTasksCommand returns the direct spreadsheet subcommands. They skip the
// model entirely, useful for scripting and for checking what the agent did.
func NewTasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Inspect and update the task spreadsheet directly",
		Commands: []*cli.Command{
			{
				Name:      "undone",
				Usage:     "List unfinished tasks for an assignee",
				ArgsUsage: "<name>",
				Action:    runTasksUndone,
			},
			{
				Name:      "done",
				Usage:     "Mark matching open tasks of an assignee as done",
				ArgsUsage: "<name> <sub-task fragment>...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "status",
						Usage: "Status value to write",
						Value: "done",
					},
				},
				Action: runTasksDone,
			},
		},
	}
}

func runTasksUndone(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return fmt.Errorf("usage: taskrecap tasks undone <name>")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store := sheet.NewClient(cfg.Sheet)

	records, err := store.QueryUndone(ctx, name)
	if errors.Is(err, sheet.ErrEmptyStore) {
		fmt.Println(sheet.EmptyStoreReply)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println(sheet.FormatUndone(name, records))
	return nil
}

func runTasksDone(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("usage: taskrecap tasks done <name> <sub-task fragment>...")
	}
	name, fragments := args[0], args[1:]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store := sheet.NewClient(cfg.Sheet)

	sum, err := store.UpdateStatus(ctx, name, fragments, cmd.String("status"))
	if errors.Is(err, sheet.ErrEmptyStore) {
		fmt.Println(sheet.EmptyStoreReply)
		return nil
	}
	if errors.Is(err, sheet.ErrNoMatch) {
		fmt.Println(sheet.FormatUpdate(name, sheet.UpdateSummary{}))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println(sheet.FormatUpdate(name, sum))
	return nil
}
