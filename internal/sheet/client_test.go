package sheet

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestBuildRowsOneRowPerTask(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	req := AddRequest{
		Names:      []string{"Ana", "Budi"},
		Projects:   []string{"Fusion", "Fusion"},
		Categories: []string{"Research", "Development"},
		SubTasks:   []string{"X", "Y"},
		Assignors:  []*string{nil, strPtr("Fakhri")},
	}

	rows, err := buildRows(req, "Fakhri", "PIC", now)
	if err != nil {
		t.Fatalf("buildRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	for i, row := range rows {
		if len(row) != 14 {
			t.Fatalf("row %d has %d columns, want 14", i, len(row))
		}
		if row[colAssignee] != req.Names[i] {
			t.Errorf("row %d assignee = %v", i, row[colAssignee])
		}
		if row[colSubTask] != req.SubTasks[i] {
			t.Errorf("row %d sub task = %v", i, row[colSubTask])
		}
		if row[colAssigneeRef] != req.Names[i] {
			t.Errorf("row %d assignee ref = %v", i, row[colAssigneeRef])
		}
		if row[colReporter] != "Fakhri" || row[colRole] != "PIC" {
			t.Errorf("row %d fixed columns = %v / %v", i, row[colReporter], row[colRole])
		}
		if row[colStatus] != statusInitial {
			t.Errorf("row %d status = %v", i, row[colStatus])
		}
	}

	if rows[0][colAssignor] != nil {
		t.Errorf("nil assignor should stay empty, got %v", rows[0][colAssignor])
	}
	if rows[1][colAssignor] != "Fakhri" {
		t.Errorf("assignor = %v", rows[1][colAssignor])
	}

	wantSerial := ToSerial(now)
	if rows[0][colTimestamp] != wantSerial || rows[0][colStartDate] != wantSerial {
		t.Errorf("timestamp/start serial = %v / %v, want %v", rows[0][colTimestamp], rows[0][colStartDate], wantSerial)
	}
}

func TestBuildRowsLengthMismatch(t *testing.T) {
	req := AddRequest{
		Names:      []string{"Ana", "Budi"},
		Projects:   []string{"Fusion"},
		Categories: []string{"Research", "Development"},
		SubTasks:   []string{"X", "Y"},
		Assignors:  []*string{nil, nil},
	}
	if _, err := buildRows(req, "Fakhri", "PIC", time.Now()); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestBuildRowsEmpty(t *testing.T) {
	if _, err := buildRows(AddRequest{}, "Fakhri", "PIC", time.Now()); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty request, got %v", err)
	}
}

func taskRow(assignee, project, subTask, assignor, status string) []any {
	return []any{
		45000.0, assignee, "Fakhri", project, "Research", subTask,
		nil, 45000.0, nil, nil, assignor, "PIC", status, assignee,
	}
}

func TestFilterUndone(t *testing.T) {
	values := [][]any{
		taskRow("Ana", "Fusion", "Task X details", "Fakhri", "on progress"),
		taskRow("ana", "Fusion", "Task Y", "Fakhri", "DONE"),
		taskRow("Budi", "Atlas", "Task Z", "", "on progress"),
		{"short", "row"}, // fewer than 6 columns, skipped
		taskRow("ANA ", "Atlas", "Task W", "", ""),
	}

	got := filterUndone(values, "Ana")
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(got), got)
	}
	if got[0].SubTask != "Task X details" || got[1].SubTask != "Task W" {
		t.Errorf("unexpected records: %+v", got)
	}
	if got[0].Row != 1 || got[1].Row != 5 {
		t.Errorf("row numbers = %d, %d", got[0].Row, got[1].Row)
	}
}

func TestFilterUndoneEmptyStatusIsOpen(t *testing.T) {
	values := [][]any{taskRow("Ana", "Fusion", "Task X", "", "")}
	if got := filterUndone(values, "Ana"); len(got) != 1 {
		t.Fatalf("empty status should count as open, got %d records", len(got))
	}
}

func TestBuildStatusUpdates(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	startSerial := ToSerial(now.Add(-90 * time.Minute))

	values := [][]any{
		{startSerial, "Ana", "Fakhri", "Fusion", "Research", "Task X details", nil, startSerial, nil, nil, "Fakhri", "PIC", "on progress", "Ana"},
		taskRow("Ana", "Fusion", "Other work", "Fakhri", "on progress"),
		taskRow("Ana", "Fusion", "Task X follow-up", "Fakhri", "done"),
	}

	data, summary := buildStatusUpdates(values, "Ana", []string{"x"}, "done", "Recap Task Agent", now)

	if summary.Count != 1 {
		t.Fatalf("expected 1 update, got %d", summary.Count)
	}
	if summary.SubTasks[0] != "Task X details" {
		t.Errorf("updated sub task = %q", summary.SubTasks[0])
	}
	if data[0].Range != "Recap Task Agent!I1:M1" {
		t.Errorf("range = %q", data[0].Range)
	}

	row := data[0].Values[0]
	if dur, ok := row[1].(int); !ok || dur != 90 {
		t.Errorf("duration = %v, want 90", row[1])
	}
	if row[4] != "done" {
		t.Errorf("status = %v", row[4])
	}
	if row[2] != "Fakhri" || row[3] != "PIC" {
		t.Errorf("assignor/role carried over = %v / %v", row[2], row[3])
	}
}

func TestBuildStatusUpdatesNoMatch(t *testing.T) {
	values := [][]any{taskRow("Budi", "Fusion", "Task X", "", "on progress")}
	data, summary := buildStatusUpdates(values, "Ana", []string{"x"}, "done", "Recap Task Agent", time.Now())
	if len(data) != 0 || summary.Count != 0 {
		t.Fatalf("expected no updates, got %d", len(data))
	}
}

func TestBuildStatusUpdatesUnparseableStartDate(t *testing.T) {
	// The deployment quirk: an unparseable start date falls back to "now",
	// yielding a duration of (about) zero rather than an error.
	values := [][]any{
		{"garbage", "Ana", "Fakhri", "Fusion", "Research", "Task X", nil, "garbage", nil, nil, "Fakhri", "PIC", "on progress", "Ana"},
	}
	data, summary := buildStatusUpdates(values, "Ana", []string{"task"}, "done", "Recap Task Agent", time.Now())
	if summary.Count != 1 {
		t.Fatalf("expected 1 update, got %d", summary.Count)
	}
	if dur := data[0].Values[0][1].(int); dur < -1 || dur > 1 {
		t.Errorf("duration with fallback start = %d, want ~0", dur)
	}
}

func TestAnyFragmentMatches(t *testing.T) {
	if !anyFragmentMatches("Adjust Network Cognitive Warfare", []string{"network"}) {
		t.Error("case-insensitive substring should match")
	}
	if anyFragmentMatches("Task X", []string{"y", "z"}) {
		t.Error("unrelated fragments should not match")
	}
	if !anyFragmentMatches("anything", []string{strings.TrimSpace(" ")}) {
		t.Error("empty fragment matches everything (preserved behavior)")
	}
}
