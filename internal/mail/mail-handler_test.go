package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askfield/user_service/internal/dto"
)

func TestHandleMessageUnknownKey(t *testing.T) {
	h := NewMailHandler(newTestMailService(t))
	assert.Error(t, h.HandleMessage("user.deleted", `{}`))
}

func TestHandleMessageBadPayload(t *testing.T) {
	h := NewMailHandler(newTestMailService(t))
	assert.Error(t, h.HandleMessage(dto.EventVerifyEmail, `not-json`))
	assert.Error(t, h.HandleMessage(dto.EventWelcome, `not-json`))
}
