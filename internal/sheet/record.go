package sheet

import (
	"fmt"
	"strings"
)

// Column layout of one task row in the A:N range.
const (
	colTimestamp = iota
	colAssignee
	colReporter
	colProject
	colCategory
	colSubTask
	colBlank
	colStartDate
	colEndDate
	colDuration
	colAssignor
	colRole
	colStatus
	colAssigneeRef
)

// statusDone is the terminal status marker, matched case-insensitively.
const statusDone = "done"

// statusInitial is written into newly appended rows.
const statusInitial = "on progress"

// Record is one task row read back from the store.
type Record struct {
	Row      int    `json:"row"` // 1-based sheet row
	Assignee string `json:"assignee"`
	Project  string `json:"project"`
	Category string `json:"category"`
	SubTask  string `json:"sub_task"`
	Assignor string `json:"assignor"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	StartRaw any    `json:"-"` // start-date cell as returned by the API
}

// cellString renders an API cell value as trimmed text.
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

func cellAt(row []any, idx int) any {
	if idx < len(row) {
		return row[idx]
	}
	return nil
}

// recordFromRow maps a raw row onto a Record. rowNum is 1-based.
func recordFromRow(row []any, rowNum int) Record {
	return Record{
		Row:      rowNum,
		Assignee: cellString(cellAt(row, colAssignee)),
		Project:  cellString(cellAt(row, colProject)),
		Category: cellString(cellAt(row, colCategory)),
		SubTask:  cellString(cellAt(row, colSubTask)),
		Assignor: cellString(cellAt(row, colAssignor)),
		Role:     cellString(cellAt(row, colRole)),
		Status:   cellString(cellAt(row, colStatus)),
		StartRaw: cellAt(row, colStartDate),
	}
}

func isDone(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), statusDone)
}

func sameAssignee(cell, name string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), strings.TrimSpace(name))
}
