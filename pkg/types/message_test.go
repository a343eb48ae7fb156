package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageConstructors(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
		role MessageRole
	}{
		{"system", NewSystemMessage("rules"), RoleSystem},
		{"user", NewUserMessage("snapshot"), RoleUser},
		{"assistant", NewAssistantMessage("{}"), RoleAssistant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.role, tt.msg.Role)
			assert.NotEmpty(t, tt.msg.Content)
		})
	}
}
