// Package sheet implements the Google Sheets task store client.
//
// Every operation opens its own Sheets service and applies an independent
// timeout; there is no connection pooling and no retry at this layer.
package sheet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/example/taskrecap/internal/config"
)

// Client performs task CRUD against one spreadsheet.
type Client struct {
	cfg config.SheetConfig
	now func() time.Time
}

// NewClient creates a task store client from config.
func NewClient(cfg config.SheetConfig) *Client {
	return &Client{cfg: cfg, now: time.Now}
}

// AddRequest carries the parallel lists of one batch add. Index i across all
// lists describes one task. Assignor entries may be nil.
type AddRequest struct {
	Names      []string
	Projects   []string
	Categories []string
	SubTasks   []string
	Assignors  []*string
}

// UpdateSummary reports the outcome of an UpdateStatus call.
type UpdateSummary struct {
	Count    int
	SubTasks []string
}

func (c *Client) readRange() string {
	return c.cfg.SheetName + "!A:N"
}

func (c *Client) service(ctx context.Context) (*sheets.Service, error) {
	srv, err := sheets.NewService(ctx,
		option.WithCredentialsFile(c.cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return srv, nil
}

func (c *Client) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := c.cfg.Timeout.Duration()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// AppendTasks validates the request, appends one row per task and returns a
// confirmation message pointing at the spreadsheet.
func (c *Client) AppendTasks(ctx context.Context, req AddRequest) (string, error) {
	rows, err := buildRows(req, c.cfg.Reporter, c.cfg.Role, c.now())
	if err != nil {
		return "", err
	}

	slog.Info("appending tasks to spreadsheet", "count", len(rows))

	ctx, cancel := c.opContext(ctx)
	defer cancel()

	srv, err := c.service(ctx)
	if err != nil {
		return "", err
	}

	_, err = srv.Spreadsheets.Values.
		Append(c.cfg.SpreadsheetID, c.readRange(), &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("append tasks: %w", err)
	}

	slog.Info("tasks appended", "count", len(rows))
	return fmt.Sprintf(
		"✅ Task berhasil ditambahkan untuk detailnya bisa di cek di link spreadsheet berikut:\n%s",
		c.cfg.ShareLink,
	), nil
}

// buildRows turns an AddRequest into sheet rows, enforcing the equal-length
// invariant across all parallel lists. Nothing is written when it fails.
func buildRows(req AddRequest, reporter, role string, now time.Time) ([][]any, error) {
	total := len(req.Names)
	if len(req.Projects) != total || len(req.Categories) != total ||
		len(req.SubTasks) != total || len(req.Assignors) != total {
		return nil, fmt.Errorf("%w: all input lists must have the same length", ErrValidation)
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: no tasks given", ErrValidation)
	}

	serial := ToSerial(now)
	rows := make([][]any, 0, total)
	for i := 0; i < total; i++ {
		var assignor any
		if req.Assignors[i] != nil {
			assignor = *req.Assignors[i]
		}
		rows = append(rows, []any{
			serial,        // timestamp
			req.Names[i],  // assignee
			reporter,      // fixed reporter
			req.Projects[i],
			req.Categories[i],
			req.SubTasks[i],
			nil,           // blank
			serial,        // start date
			nil,           // end date, set on completion
			nil,           // duration, set on completion
			assignor,
			role,          // fixed role
			statusInitial, // status
			req.Names[i],  // assignee ref
		})
	}
	return rows, nil
}

// QueryUndone returns every open task for the given assignee.
// ErrEmptyStore means the range had no rows at all; an empty slice with a nil
// error means the store has rows but none qualify.
func (c *Client) QueryUndone(ctx context.Context, name string) ([]Record, error) {
	slog.Info("fetching undone tasks", "assignee", name)

	ctx, cancel := c.opContext(ctx)
	defer cancel()

	srv, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Spreadsheets.Values.
		Get(c.cfg.SpreadsheetID, c.readRange()).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}

	if len(resp.Values) == 0 {
		slog.Warn("no data found in the spreadsheet")
		return nil, ErrEmptyStore
	}

	return filterUndone(resp.Values, name), nil
}

// filterUndone keeps rows whose assignee matches case-insensitively and whose
// status is not the terminal marker. Rows with fewer than 6 columns are
// malformed and skipped silently.
func filterUndone(values [][]any, name string) []Record {
	var out []Record
	for i, row := range values {
		if len(row) < 6 {
			continue
		}
		if !sameAssignee(cellString(cellAt(row, colAssignee)), name) {
			continue
		}
		if isDone(cellString(cellAt(row, colStatus))) {
			continue
		}
		out = append(out, recordFromRow(row, i+1))
	}
	return out
}

// UpdateStatus marks open tasks of the assignee whose sub-task contains any of
// the given fragments. Matched rows get their end date, duration and status
// columns rewritten in a single batched update.
func (c *Client) UpdateStatus(ctx context.Context, name string, fragments []string, status string) (UpdateSummary, error) {
	if status == "" {
		status = statusDone
	}
	slog.Info("updating task status", "assignee", name, "fragments", strings.Join(fragments, ", "), "status", status)

	ctx, cancel := c.opContext(ctx)
	defer cancel()

	srv, err := c.service(ctx)
	if err != nil {
		return UpdateSummary{}, err
	}

	resp, err := srv.Spreadsheets.Values.
		Get(c.cfg.SpreadsheetID, c.readRange()).
		Context(ctx).
		Do()
	if err != nil {
		return UpdateSummary{}, fmt.Errorf("fetch tasks: %w", err)
	}
	if len(resp.Values) == 0 {
		return UpdateSummary{}, ErrEmptyStore
	}

	data, summary := buildStatusUpdates(resp.Values, name, fragments, status, c.cfg.SheetName, c.now())
	if len(data) == 0 {
		return UpdateSummary{}, ErrNoMatch
	}

	_, err = srv.Spreadsheets.Values.
		BatchUpdate(c.cfg.SpreadsheetID, &sheets.BatchUpdateValuesRequest{
			ValueInputOption: "RAW",
			Data:             data,
		}).
		Context(ctx).
		Do()
	if err != nil {
		return UpdateSummary{}, fmt.Errorf("batch update: %w", err)
	}

	slog.Info("task status updated", "assignee", name, "count", summary.Count)
	return summary, nil
}

// buildStatusUpdates scans all rows and produces one I:M range update per
// matched row. The duration is recomputed from the row's start date to now.
func buildStatusUpdates(values [][]any, name string, fragments []string, status, sheetName string, now time.Time) ([]*sheets.ValueRange, UpdateSummary) {
	var data []*sheets.ValueRange
	var summary UpdateSummary

	for i, row := range values {
		rowNum := i + 1
		if len(row) < 13 {
			continue
		}
		if !sameAssignee(cellString(cellAt(row, colAssignee)), name) {
			continue
		}
		if isDone(cellString(cellAt(row, colStatus))) {
			continue
		}
		if !anyFragmentMatches(cellString(cellAt(row, colSubTask)), fragments) {
			continue
		}

		start := ParseCell(cellAt(row, colStartDate))
		durationMinutes := int(now.Sub(start).Minutes())

		data = append(data, &sheets.ValueRange{
			Range: fmt.Sprintf("%s!I%d:M%d", sheetName, rowNum, rowNum),
			Values: [][]any{{
				ToSerial(now),
				durationMinutes,
				cellAt(row, colAssignor),
				cellAt(row, colRole),
				status,
			}},
		})
		summary.Count++
		summary.SubTasks = append(summary.SubTasks, cellString(cellAt(row, colSubTask)))
	}
	return data, summary
}

func anyFragmentMatches(subTask string, fragments []string) bool {
	haystack := strings.ToLower(strings.TrimSpace(subTask))
	for _, frag := range fragments {
		needle := strings.ToLower(strings.TrimSpace(frag))
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
