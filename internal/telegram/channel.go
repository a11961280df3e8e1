// Package telegram is the chat front end of the assistant. Team members
// report tasks in natural language, the agent turns them into spreadsheet
// rows and answers back in the same chat.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/example/taskrecap/internal/config"
	"github.com/example/taskrecap/internal/sheet"
)

const longPollTimeout = 30 // seconds

// Agent is the reasoning entry point the channel hands chat messages to.
type Agent interface {
	Run(ctx context.Context, command string) (string, error)
}

// TaskChecker is the direct spreadsheet lookup used by /check_task, which
// bypasses the model on purpose.
type TaskChecker interface {
	QueryUndone(ctx context.Context, name string) ([]sheet.Record, error)
}

// Channel connects the bot to Telegram via long polling.
type Channel struct {
	bot   *telego.Bot
	agent Agent
	tasks TaskChecker
	admin string
}

func NewChannel(cfg config.TelegramConfig, agent Agent, tasks TaskChecker) (*Channel, error) {
	bot, err := telego.NewBot(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &Channel{
		bot:   bot,
		agent: agent,
		tasks: tasks,
		admin: cfg.AdminContact,
	}, nil
}

// Start registers the command menu, begins long polling and blocks until ctx
// is cancelled.
func (c *Channel) Start(ctx context.Context) error {
	slog.Info("starting telegram bot", "mode", "long polling")

	if err := c.registerCommands(ctx); err != nil {
		// Menu registration is cosmetic, the bot still answers without it.
		slog.Warn("could not register bot commands", "error", err)
	}

	updates, err := c.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: longPollTimeout,
	})
	if err != nil {
		return fmt.Errorf("start long polling: %w", err)
	}

	bh, err := th.NewBotHandler(c.bot, updates)
	if err != nil {
		return fmt.Errorf("create bot handler: %w", err)
	}

	// Command handlers first, the catch-all report handler last.
	bh.HandleMessage(c.handleStart, th.CommandEqual("start"))
	bh.HandleMessage(c.handleInfo, th.CommandEqual("info"))
	bh.HandleMessage(c.handleCheckTask, th.CommandEqual("check_task"))
	bh.HandleMessage(c.handleChat, th.CommandEqual("chat"))
	bh.HandleMessage(c.handleReport, th.AnyMessage())

	go func() {
		<-ctx.Done()
		bh.Stop()
	}()

	slog.Info("telegram bot connected")
	return bh.Start()
}

func (c *Channel) registerCommands(ctx context.Context) error {
	return c.bot.SetMyCommands(ctx, &telego.SetMyCommandsParams{
		Commands: []telego.BotCommand{
			{Command: "start", Description: "add task"},
			{Command: "info", Description: "info"},
			{Command: "check_task", Description: "check task"},
			{Command: "chat", Description: "chat with bot"},
		},
	})
}

func (c *Channel) handleStart(ctx *th.Context, message telego.Message) error {
	return c.reply(ctx, message, startReply)
}

func (c *Channel) handleInfo(ctx *th.Context, message telego.Message) error {
	return c.reply(ctx, message, fmt.Sprintf(infoReply, c.admin))
}

func (c *Channel) handleCheckTask(ctx *th.Context, message telego.Message) error {
	name := senderName(message)
	records, err := c.tasks.QueryUndone(ctx, name)
	if err != nil && !errors.Is(err, sheet.ErrEmptyStore) {
		slog.Error("spreadsheet lookup failed", "assignee", name, "error", err)
	}
	return c.reply(ctx, message, checkTaskReplyText(name, c.admin, records, err))
}

func (c *Channel) handleChat(ctx *th.Context, message telego.Message) error {
	text := chatText(message.Text)
	if text == "" {
		return c.reply(ctx, message, emptyChatReply)
	}
	return c.runAgent(ctx, message, text, chatErrorReply)
}

// handleReport treats any plain text message as a task report and routes it
// through the agent.
func (c *Channel) handleReport(ctx *th.Context, message telego.Message) error {
	if message.Text == "" || strings.HasPrefix(message.Text, "/") {
		return nil
	}
	return c.runAgent(ctx, message, message.Text, reportErrorReply)
}

func (c *Channel) runAgent(ctx *th.Context, message telego.Message, text, apology string) error {
	name := senderName(message)
	answer, err := c.agent.Run(ctx, fmt.Sprintf("%s: %s", name, text))
	if err != nil {
		slog.Error("agent run failed", "user", name, "error", err)
		answer = fmt.Sprintf(apology, c.admin)
	}
	if answer == "" {
		answer = fmt.Sprintf(apology, c.admin)
	}
	return c.reply(ctx, message, answer)
}

func (c *Channel) reply(ctx *th.Context, message telego.Message, text string) error {
	return c.Send(ctx, message.Chat.ID, text)
}

// Send posts a message to a chat outside the request/reply flow. The
// reminder digest uses it.
func (c *Channel) Send(ctx context.Context, chatID int64, text string) error {
	if _, err := c.bot.SendMessage(ctx, tu.Message(tu.ID(chatID), text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// checkTaskReplyText picks the chat reply for a /check_task lookup.
func checkTaskReplyText(name, admin string, records []sheet.Record, err error) string {
	switch {
	case errors.Is(err, sheet.ErrEmptyStore):
		return sheet.EmptyStoreReply
	case err != nil:
		return fmt.Sprintf(checkErrorReply, admin)
	default:
		return sheet.FormatUndone(name, records)
	}
}

// chatText strips the /chat prefix from a command message.
func chatText(text string) string {
	return strings.TrimSpace(strings.Replace(text, "/chat", "", 1))
}

func senderName(message telego.Message) string {
	if message.From == nil {
		return "Unknown"
	}
	return message.From.FirstName
}
