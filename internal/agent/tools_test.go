package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/example/taskrecap/internal/sheet"
)

// fakeStore records calls and plays back canned results.
type fakeStore struct {
	addReq    *sheet.AddRequest
	addReply  string
	addErr    error
	queryName string
	records   []sheet.Record
	queryErr  error
}

func (f *fakeStore) AppendTasks(ctx context.Context, req sheet.AddRequest) (string, error) {
	f.addReq = &req
	if f.addErr != nil {
		return "", f.addErr
	}
	return f.addReply, nil
}

func (f *fakeStore) QueryUndone(ctx context.Context, name string) ([]sheet.Record, error) {
	f.queryName = name
	return f.records, f.queryErr
}

func TestAddTaskToolMapsArguments(t *testing.T) {
	store := &fakeStore{addReply: "✅ Task berhasil ditambahkan"}
	tl := &AddTaskTool{store: store}

	args := `{
		"name": ["Budi", "Sari"],
		"project_name": ["Website", "Infra"],
		"task": ["Development", "Maintenance"],
		"sub_task": ["landing page", "migrate db"],
		"assignor": ["Pak Andi", null]
	}`
	out, err := tl.InvokableRun(context.Background(), args)
	if err != nil {
		t.Fatalf("InvokableRun: %v", err)
	}
	if out != store.addReply {
		t.Errorf("got %q want %q", out, store.addReply)
	}

	req := store.addReq
	if req == nil {
		t.Fatal("store never called")
	}
	if len(req.Names) != 2 || req.Names[1] != "Sari" {
		t.Errorf("names not mapped: %v", req.Names)
	}
	if req.Categories[0] != "Development" {
		t.Errorf("categories not mapped: %v", req.Categories)
	}
	if req.Assignors[0] == nil || *req.Assignors[0] != "Pak Andi" {
		t.Errorf("assignor[0] not mapped: %v", req.Assignors)
	}
	if req.Assignors[1] != nil {
		t.Errorf("null assignor should stay nil, got %v", *req.Assignors[1])
	}
}

func TestAddTaskToolBadJSON(t *testing.T) {
	tl := &AddTaskTool{store: &fakeStore{}}
	if _, err := tl.InvokableRun(context.Background(), `{"name": "not a list"`); err == nil {
		t.Error("expected error for malformed arguments")
	}
}

func TestAddTaskToolPropagatesValidation(t *testing.T) {
	store := &fakeStore{addErr: sheet.ErrValidation}
	tl := &AddTaskTool{store: store}
	args := `{"name":["Budi"],"project_name":[],"task":[],"sub_task":[],"assignor":[]}`
	if _, err := tl.InvokableRun(context.Background(), args); err == nil {
		t.Error("expected validation error to propagate")
	}
}

func TestCheckTaskToolFormatsRecords(t *testing.T) {
	store := &fakeStore{records: []sheet.Record{
		{Project: "Website", SubTask: "landing page", Assignor: "Pak Andi"},
	}}
	tl := &CheckTaskTool{store: store}

	out, err := tl.InvokableRun(context.Background(), `{"name":"Budi"}`)
	if err != nil {
		t.Fatalf("InvokableRun: %v", err)
	}
	if store.queryName != "Budi" {
		t.Errorf("queried %q want Budi", store.queryName)
	}
	if !strings.Contains(out, "Terdapat 1 task") || !strings.Contains(out, "- Website | landing page | Pak Andi") {
		t.Errorf("unexpected reply: %q", out)
	}
}

func TestCheckTaskToolEmptyStoreIsReply(t *testing.T) {
	store := &fakeStore{queryErr: sheet.ErrEmptyStore}
	tl := &CheckTaskTool{store: store}

	out, err := tl.InvokableRun(context.Background(), `{"name":"Budi"}`)
	if err != nil {
		t.Fatalf("empty store should not be an error: %v", err)
	}
	if out != sheet.EmptyStoreReply {
		t.Errorf("got %q want %q", out, sheet.EmptyStoreReply)
	}
}

func TestToolInfos(t *testing.T) {
	ctx := context.Background()
	for _, tl := range NewTools(&fakeStore{}) {
		info, err := tl.Info(ctx)
		if err != nil {
			t.Fatalf("Info: %v", err)
		}
		if info.Name != "add_task_management" && info.Name != "check_task_management" {
			t.Errorf("unexpected tool name %q", info.Name)
		}
		if info.ParamsOneOf == nil {
			t.Errorf("tool %q has no parameter schema", info.Name)
		}
	}
}
