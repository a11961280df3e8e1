package sheet

import (
	"fmt"
	"strings"
)

// EmptyStoreReply is the chat reply used when the spreadsheet has no rows at
// all. Callers map ErrEmptyStore to it so the agent and the bot commands say
// the same thing.
const EmptyStoreReply = "❌ Tidak ada data pada spreadsheet."

// FormatUndone renders the undone-task report for one assignee the way the
// bot presents it in chat.
func FormatUndone(name string, records []Record) string {
	if len(records) == 0 {
		return fmt.Sprintf("✅ Tidak ada task yang belum selesai dari %s.\n\nKEEP IT THE GOOD WORK 👍", name)
	}
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("- %s | %s | %s", r.Project, r.SubTask, r.Assignor))
	}
	return fmt.Sprintf(
		"📌 Terdapat %d task yang belum selesai dari %s:\n\n%s",
		len(records), name, strings.Join(lines, "\n"),
	)
}

// FormatUpdate renders the confirmation for a status update.
func FormatUpdate(name string, sum UpdateSummary) string {
	if sum.Count == 0 {
		return fmt.Sprintf("⚠️ Tidak ada task dari %s yang cocok.", name)
	}
	return fmt.Sprintf(
		"✅ %d task milik %s berhasil diupdate → %s",
		sum.Count, name, strings.Join(sum.SubTasks, ", "),
	)
}
