package sheet

import (
	"strings"
	"testing"
)

func TestFormatUndoneEmpty(t *testing.T) {
	got := FormatUndone("Budi", nil)
	if !strings.Contains(got, "✅ Tidak ada task yang belum selesai dari Budi") {
		t.Errorf("unexpected reply: %q", got)
	}
	if !strings.Contains(got, "KEEP IT THE GOOD WORK") {
		t.Errorf("missing encouragement line: %q", got)
	}
}

func TestFormatUndoneList(t *testing.T) {
	records := []Record{
		{Project: "Website", SubTask: "landing page", Assignor: "Sari"},
		{Project: "Infra", SubTask: "migrate db", Assignor: ""},
	}
	got := FormatUndone("Budi", records)
	if !strings.HasPrefix(got, "📌 Terdapat 2 task yang belum selesai dari Budi:\n\n") {
		t.Errorf("unexpected header: %q", got)
	}
	if !strings.Contains(got, "- Website | landing page | Sari") {
		t.Errorf("missing task line: %q", got)
	}
	if !strings.Contains(got, "- Infra | migrate db | ") {
		t.Errorf("missing task line with empty assignor: %q", got)
	}
}

func TestFormatUpdate(t *testing.T) {
	got := FormatUpdate("Budi", UpdateSummary{Count: 2, SubTasks: []string{"landing page", "migrate db"}})
	want := "✅ 2 task milik Budi berhasil diupdate → landing page, migrate db"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}

	got = FormatUpdate("Budi", UpdateSummary{})
	if got != "⚠️ Tidak ada task dari Budi yang cocok." {
		t.Errorf("unexpected no-match reply: %q", got)
	}
}
