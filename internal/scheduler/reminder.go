// Package scheduler posts periodic undone-task digests to the team chat.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/example/taskrecap/internal/config"
	"github.com/example/taskrecap/internal/sheet"
)

// Sender posts a message to a chat.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// TaskChecker looks up open tasks for one assignee.
type TaskChecker interface {
	QueryUndone(ctx context.Context, name string) ([]sheet.Record, error)
}

// Reminder fires on a 5-field cron schedule and posts a digest of every
// assignee's unfinished tasks.
type Reminder struct {
	raw       string
	schedule  cron.Schedule
	chatID    int64
	assignees []string
	tasks     TaskChecker
	sender    Sender
}

func NewReminder(cfg config.ReminderConfig, tasks TaskChecker, sender Sender) (*Reminder, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(cfg.Schedule)
	if err != nil {
		return nil, fmt.Errorf("parse cron %q: %w", cfg.Schedule, err)
	}
	if cfg.ChatID == 0 {
		return nil, fmt.Errorf("reminder needs a chat_id")
	}
	return &Reminder{
		raw:       cfg.Schedule,
		schedule:  schedule,
		chatID:    cfg.ChatID,
		assignees: cfg.Assignees,
		tasks:     tasks,
		sender:    sender,
	}, nil
}

// Run ticks once a minute and fires when the schedule matches. It blocks
// until ctx is cancelled.
func (r *Reminder) Run(ctx context.Context) error {
	slog.Info("reminder scheduled", "cron", r.raw, "chat_id", r.chatID, "assignees", len(r.assignees))

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if !matchesMinute(r.schedule, now) {
				continue
			}
			r.fire(ctx)
		}
	}
}

func (r *Reminder) fire(ctx context.Context) {
	digest := r.digest(ctx)
	if digest == "" {
		slog.Info("reminder fired, nothing to report")
		return
	}
	if err := r.sender.Send(ctx, r.chatID, digest); err != nil {
		slog.Error("reminder delivery failed", "chat_id", r.chatID, "error", err)
		return
	}
	slog.Info("reminder delivered", "chat_id", r.chatID)
}

// digest collects one section per assignee with open tasks. An empty string
// means there is nothing worth posting.
func (r *Reminder) digest(ctx context.Context) string {
	var sections []string
	for _, name := range r.assignees {
		records, err := r.tasks.QueryUndone(ctx, name)
		if errors.Is(err, sheet.ErrEmptyStore) {
			slog.Warn("reminder: spreadsheet is empty")
			return ""
		}
		if err != nil {
			slog.Error("reminder: lookup failed", "assignee", name, "error", err)
			continue
		}
		if len(records) == 0 {
			continue
		}
		sections = append(sections, sheet.FormatUndone(name, records))
	}
	if len(sections) == 0 {
		return ""
	}
	return "⏰ Reminder task harian:\n\n" + strings.Join(sections, "\n\n")
}

// matchesMinute reports whether t falls in the same minute as a scheduled
// activation.
func matchesMinute(s cron.Schedule, t time.Time) bool {
	truncated := t.Truncate(time.Minute)
	return s.Next(truncated.Add(-time.Minute)).Equal(truncated)
}
