package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTask(t *testing.T) {
	raw := map[string]any{
		"knowledge_set": "ks-42",
		"metadata": map[string]any{
			"insert_date": "2026-08-25T09:15:00.123Z",
			"conversation": map[string]any{
				"state":       "State.errored_pending_approval",
				"has_errored": true,
				"title":       "Research suburb of Epping",
			},
		},
		"extra_field": "ignored",
	}

	task, err := decodeTask(raw)
	require.NoError(t, err)

	assert.Equal(t, "ks-42", task.KnowledgeSet)
	assert.Equal(t, "2026-08-25T09:15:00.123Z", task.Metadata.InsertDate)
	assert.Equal(t, "State.errored_pending_approval", task.Metadata.Conversation.State)
	assert.Equal(t, "Research suburb of Epping", task.Metadata.Conversation.Title)
	require.NotNil(t, task.Metadata.Conversation.HasErrored)
	assert.True(t, *task.Metadata.Conversation.HasErrored)
}

func TestDecodeTaskMissingFields(t *testing.T) {
	task, err := decodeTask(map[string]any{"knowledge_set": "ks-1"})
	require.NoError(t, err)

	assert.Equal(t, "ks-1", task.KnowledgeSet)
	assert.Empty(t, task.Metadata.Conversation.State)
	assert.Nil(t, task.Metadata.Conversation.HasErrored, "absent has_errored must stay nil, not become false")
}

func TestConversationItemChainTitle(t *testing.T) {
	tests := []struct {
		name string
		item ConversationItem
		want string
	}{
		{
			name: "full path",
			item: ConversationItem{
				"message": map[string]any{
					"chain_config": map[string]any{"title": "Call Business via Bland AI"},
				},
			},
			want: "Call Business via Bland AI",
		},
		{
			name: "no chain config",
			item: ConversationItem{
				"message": map[string]any{"text": "plain agent message"},
			},
			want: "",
		},
		{
			name: "no message",
			item: ConversationItem{"update_date": "2026-08-25T09:00:00Z"},
			want: "",
		},
		{
			name: "chain config wrong shape",
			item: ConversationItem{
				"message": map[string]any{"chain_config": "not a map"},
			},
			want: "",
		},
		{
			name: "empty item",
			item: ConversationItem{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.ChainTitle())
		})
	}
}
