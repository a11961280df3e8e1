package scheduler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/example/taskrecap/internal/config"
	"github.com/example/taskrecap/internal/sheet"
)

type fakeChecker struct {
	byName map[string][]sheet.Record
	err    error
}

func (f *fakeChecker) QueryUndone(ctx context.Context, name string) ([]sheet.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byName[name], nil
}

type fakeSender struct {
	chatID int64
	text   string
	sent   int
}

func (f *fakeSender) Send(ctx context.Context, chatID int64, text string) error {
	f.chatID = chatID
	f.text = text
	f.sent++
	return nil
}

func TestNewReminderValidation(t *testing.T) {
	tasks := &fakeChecker{}
	sender := &fakeSender{}

	if _, err := NewReminder(config.ReminderConfig{Schedule: "not a cron", ChatID: 1}, tasks, sender); err == nil {
		t.Error("expected error for invalid cron expression")
	}
	if _, err := NewReminder(config.ReminderConfig{Schedule: "0 9 * * 1-5"}, tasks, sender); err == nil {
		t.Error("expected error for missing chat id")
	}
	if _, err := NewReminder(config.ReminderConfig{Schedule: "0 9 * * 1-5", ChatID: 1}, tasks, sender); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestMatchesMinute(t *testing.T) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse("0 9 * * *")
	if err != nil {
		t.Fatal(err)
	}

	at := time.Date(2025, 3, 10, 9, 0, 30, 0, time.UTC)
	if !matchesMinute(schedule, at) {
		t.Error("09:00 should match")
	}
	if matchesMinute(schedule, at.Add(time.Minute)) {
		t.Error("09:01 should not match")
	}
}

func TestDigestGroupsByAssignee(t *testing.T) {
	tasks := &fakeChecker{byName: map[string][]sheet.Record{
		"Budi": {{Project: "Website", SubTask: "landing page", Assignor: "Sari"}},
		"Sari": nil, // clean slate, skipped
		"Andi": {{Project: "Infra", SubTask: "migrate db", Assignor: "Budi"}},
	}}
	sender := &fakeSender{}
	r, err := NewReminder(config.ReminderConfig{
		Schedule:  "0 9 * * 1-5",
		ChatID:    42,
		Assignees: []string{"Budi", "Sari", "Andi"},
	}, tasks, sender)
	if err != nil {
		t.Fatal(err)
	}

	got := r.digest(context.Background())
	if !strings.HasPrefix(got, "⏰ Reminder task harian:") {
		t.Errorf("missing digest header: %q", got)
	}
	if !strings.Contains(got, "Budi") || !strings.Contains(got, "Andi") {
		t.Errorf("missing assignee sections: %q", got)
	}
	if strings.Contains(got, "Sari") {
		t.Errorf("assignee with no open tasks should be skipped: %q", got)
	}
}

func TestDigestEmpty(t *testing.T) {
	r, err := NewReminder(config.ReminderConfig{
		Schedule:  "0 9 * * 1-5",
		ChatID:    42,
		Assignees: []string{"Budi"},
	}, &fakeChecker{}, &fakeSender{})
	if err != nil {
		t.Fatal(err)
	}
	if got := r.digest(context.Background()); got != "" {
		t.Errorf("no open tasks should produce no digest, got %q", got)
	}
}

func TestDigestEmptyStoreAborts(t *testing.T) {
	r, err := NewReminder(config.ReminderConfig{
		Schedule:  "0 9 * * 1-5",
		ChatID:    42,
		Assignees: []string{"Budi"},
	}, &fakeChecker{err: sheet.ErrEmptyStore}, &fakeSender{})
	if err != nil {
		t.Fatal(err)
	}
	if got := r.digest(context.Background()); got != "" {
		t.Errorf("empty spreadsheet should abort the digest, got %q", got)
	}
}

func TestFireSendsToConfiguredChat(t *testing.T) {
	tasks := &fakeChecker{byName: map[string][]sheet.Record{
		"Budi": {{Project: "Website", SubTask: "landing page"}},
	}}
	sender := &fakeSender{}
	r, err := NewReminder(config.ReminderConfig{
		Schedule:  "0 9 * * 1-5",
		ChatID:    42,
		Assignees: []string{"Budi"},
	}, tasks, sender)
	if err != nil {
		t.Fatal(err)
	}

	r.fire(context.Background())
	if sender.sent != 1 || sender.chatID != 42 {
		t.Errorf("digest not delivered: sent=%d chat=%d", sender.sent, sender.chatID)
	}
}
