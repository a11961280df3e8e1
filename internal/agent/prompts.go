package agent

import (
	"encoding/json"
	"fmt"
	"os"
)

// defaultSystemPrompt steers the model when no prompts file is installed.
const defaultSystemPrompt = `You are a task recap assistant for a project team. Team members report what they are working on and you keep the shared task spreadsheet up to date.

When a member reports new work, call add_task_management. Extract the assignee name, the project name, the task category, the detailed sub-task and, when mentioned, the assignor. A single message may describe several tasks; pass them as parallel lists of equal length.

When a member asks about outstanding or unfinished work, call check_task_management with the member's name and relay the tool output.

Reply in the language the member used. Keep answers short and concrete. If a report is missing the project or the sub-task description, ask for it instead of guessing.`

// LoadSystemPrompt reads the agent system message from a prompts JSON file.
// The file groups named messages; the task agent uses
// agent_task.system_message. A missing file or an empty entry falls back to
// the built-in prompt, a malformed file is an error.
func LoadSystemPrompt(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultSystemPrompt, nil
		}
		return "", fmt.Errorf("read prompts file: %w", err)
	}

	var doc struct {
		AgentTask struct {
			SystemMessage string `json:"system_message"`
		} `json:"agent_task"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("parse prompts file %s: %w", path, err)
	}
	if doc.AgentTask.SystemMessage == "" {
		return defaultSystemPrompt, nil
	}
	return doc.AgentTask.SystemMessage, nil
}
