package chat_test

import (
	"testing"

	"github.com/ganot/enablement-desk/internal/domain/chat"
	"github.com/stretchr/testify/require"
)

func TestConversation_StartsWithGreeting(t *testing.T) {
	conv := chat.NewConversation()
	msgs := conv.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, chat.RoleModel, msgs[0].Role)
	require.Equal(t, chat.Greeting, msgs[0].Text)
	require.NotEmpty(t, msgs[0].ID)
}

func TestConversation_AppendOnlyCopies(t *testing.T) {
	conv := chat.NewConversation()
	conv.Append(chat.NewMessage(chat.RoleUser, "status?", false))
	conv.Append(chat.NewMessage(chat.RoleModel, "Error: boom", true))

	msgs := conv.Messages()
	require.Len(t, msgs, 3)
	require.True(t, msgs[2].IsError)

	msgs[1].Text = "edited"
	require.Equal(t, "status?", conv.Messages()[1].Text)
	require.NotEqual(t, msgs[1].ID, msgs[2].ID)
}
