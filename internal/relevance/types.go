package relevance

import "github.com/go-viper/mapstructure/v2"

// Task is one agent task as the list endpoint returns it. Only the fields
// the reporting pipeline reads are declared; the rest of the payload is
// ignored at decode time.
type Task struct {
	KnowledgeSet string       `mapstructure:"knowledge_set"`
	Metadata     TaskMetadata `mapstructure:"metadata"`
}

type TaskMetadata struct {
	InsertDate   string           `mapstructure:"insert_date"`
	Conversation TaskConversation `mapstructure:"conversation"`
}

type TaskConversation struct {
	State string `mapstructure:"state"`
	// HasErrored is a pointer because the API omits the field for tasks
	// that have not reached a terminal state; nil means "not reported".
	HasErrored *bool  `mapstructure:"has_errored"`
	Title      string `mapstructure:"title"`
}

// decodeTask converts one raw result map into a Task. Missing fields decode
// to zero values rather than failing.
func decodeTask(raw map[string]any) (Task, error) {
	var t Task
	if err := mapstructure.Decode(raw, &t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// ConversationItem is one entry of a task's conversation knowledge set.
// The payload is free-form, so it stays a map and accessors pull out the
// parts the pipeline reads.
type ConversationItem map[string]any

// ChainTitle returns message.chain_config.title, or "" when the item has
// no chain config (plain messages, tool output, and so on).
func (i ConversationItem) ChainTitle() string {
	var v struct {
		Message struct {
			ChainConfig struct {
				Title string `mapstructure:"title"`
			} `mapstructure:"chain_config"`
		} `mapstructure:"message"`
	}
	if err := mapstructure.Decode(map[string]any(i), &v); err != nil {
		return ""
	}
	return v.Message.ChainConfig.Title
}
