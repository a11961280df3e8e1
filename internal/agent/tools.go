package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/example/taskrecap/internal/sheet"
)

// TaskStore is the slice of the spreadsheet client the agent tools use.
type TaskStore interface {
	AppendTasks(ctx context.Context, req sheet.AddRequest) (string, error)
	QueryUndone(ctx context.Context, name string) ([]sheet.Record, error)
}

// NewTools builds the tool set exposed to the model.
func NewTools(store TaskStore) []tool.BaseTool {
	return []tool.BaseTool{
		&AddTaskTool{store: store},
		&CheckTaskTool{store: store},
	}
}

// AddTaskTool records new task entries in the spreadsheet on behalf of the
// model. Arguments are parallel lists where index i across all of them
// describes one task.
type AddTaskTool struct {
	store TaskStore
}

func (t *AddTaskTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "add_task_management",
		Desc: `Tool for adding task management entries to Google Spreadsheet.

Expected input fields:
- name: List[str] → List of user names (assignees) responsible for the tasks.
- project_name: List[str] → List of project names associated with each task.
- task: List[str] → List of task categories for each sub-task. Allowed categories: Research, Project, Maintenance, Delivery, Pitching, Development, or any other suitable category.
- sub_task: List[str] → List of detailed sub-tasks being worked on by the user.
- assignor: List[Optional[str]] → List of assignors (task givers). Can be null if not specified.`,
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"name": {
				Type:     "array",
				ElemInfo: &schema.ParameterInfo{Type: "string"},
				Desc:     "List of user names (assignees) responsible for the tasks.",
				Required: true,
			},
			"project_name": {
				Type:     "array",
				ElemInfo: &schema.ParameterInfo{Type: "string"},
				Desc:     "List of project names associated with each task.",
				Required: true,
			},
			"task": {
				Type:     "array",
				ElemInfo: &schema.ParameterInfo{Type: "string"},
				Desc:     "List of task categories for each sub-task. Allowed categories include: Research, Project, Maintenance, Delivery, Pitching, Development, or any other suitable category.",
				Required: true,
			},
			"sub_task": {
				Type:     "array",
				ElemInfo: &schema.ParameterInfo{Type: "string"},
				Desc:     "List of detailed sub-tasks being worked on by the user.",
				Required: true,
			},
			"assignor": {
				Type:     "array",
				ElemInfo: &schema.ParameterInfo{Type: "string"},
				Desc:     "List of assignors (persons who assigned the task). Can be null if not specified.",
				Required: true,
			},
		}),
	}, nil
}

type addTaskArgs struct {
	Name        []string  `json:"name"`
	ProjectName []string  `json:"project_name"`
	Task        []string  `json:"task"`
	SubTask     []string  `json:"sub_task"`
	Assignor    []*string `json:"assignor"`
}

func (t *AddTaskTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	var params addTaskArgs
	if err := json.Unmarshal([]byte(argumentsInJSON), &params); err != nil {
		return "", fmt.Errorf("parse arguments: %w", err)
	}

	return t.store.AppendTasks(ctx, sheet.AddRequest{
		Names:      params.Name,
		Projects:   params.ProjectName,
		Categories: params.Task,
		SubTasks:   params.SubTask,
		Assignors:  params.Assignor,
	})
}

// CheckTaskTool reports a member's unfinished tasks. The empty-spreadsheet
// case is a normal reply, not an error, so the model can relay it verbatim.
type CheckTaskTool struct {
	store TaskStore
}

func (t *CheckTaskTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "check_task_management",
		Desc: "Tool to check whether a user still has any unfinished tasks. Input should be the name of the user.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"name": {
				Type:     "string",
				Desc:     "The name of the user whose tasks should be checked.",
				Required: true,
			},
		}),
	}, nil
}

type checkTaskArgs struct {
	Name string `json:"name"`
}

func (t *CheckTaskTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	var params checkTaskArgs
	if err := json.Unmarshal([]byte(argumentsInJSON), &params); err != nil {
		return "", fmt.Errorf("parse arguments: %w", err)
	}

	records, err := t.store.QueryUndone(ctx, params.Name)
	if errors.Is(err, sheet.ErrEmptyStore) {
		return sheet.EmptyStoreReply, nil
	}
	if err != nil {
		return "", err
	}
	return sheet.FormatUndone(params.Name, records), nil
}
