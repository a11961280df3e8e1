package agent

import "github.com/cloudwego/eino/schema"

// historyWindow is the number of curated messages fed back to the model on
// each inference.
const historyWindow = 6

// Curate trims a transcript down to what the model should see again: user
// turns, plain assistant turns, and assistant/tool exchanges kept as atomic
// pairs. System messages and tool results whose calling assistant message is
// gone never pass through. At most historyWindow messages survive, taken from
// the end. The input slice is not modified.
func Curate(messages []*schema.Message) []*schema.Message {
	kept := make([]*schema.Message, 0, len(messages))
	for i := 0; i < len(messages); i++ {
		msg := messages[i]
		switch {
		case msg.Role == schema.Assistant && len(msg.ToolCalls) > 0:
			kept = append(kept, msg)
			if i+1 < len(messages) && messages[i+1].Role == schema.Tool {
				kept = append(kept, messages[i+1])
				i++
			}
		case msg.Role == schema.User || msg.Role == schema.Assistant:
			kept = append(kept, msg)
		}
	}
	if len(kept) > historyWindow {
		kept = kept[len(kept)-historyWindow:]
	}
	// The window cut can land between an assistant call and its tool result.
	// Providers reject a tool message with no preceding call, so a leading
	// orphan goes too.
	for len(kept) > 0 && kept[0].Role == schema.Tool {
		kept = kept[1:]
	}
	return kept
}
