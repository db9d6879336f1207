package chat

import "sync"

// Conversation is an append-only message log.
type Conversation struct {
	mu       sync.RWMutex
	messages []Message
}

// NewConversation starts a conversation with the greeting message.
func NewConversation() *Conversation {
	return &Conversation{messages: []Message{NewMessage(RoleModel, Greeting, false)}}
}

// Append adds a message to the end of the log.
func (c *Conversation) Append(msg Message) {
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
}

// Messages returns a copy of the log.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Message(nil), c.messages...)
}

// Len reports the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}
