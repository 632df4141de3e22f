package mail

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/askfield/user_service/internal/dto"
)

type MailHandler struct {
	MailService *MailService
}

func NewMailHandler(ms *MailService) *MailHandler {
	return &MailHandler{MailService: ms}
}

// HandleMessage routes an event by its kafka key to the matching template.
func (h *MailHandler) HandleMessage(key, value string) error {
	switch key {
	case dto.EventVerifyEmail:
		var event dto.VerifyEmailEvent
		if err := json.Unmarshal([]byte(value), &event); err != nil {
			log.Printf("invalid verify_email payload: %s", value)
			return err
		}
		log.Printf("verify email event: user_id=%d email=%s", event.UserID, event.Email)
		return h.MailService.SendVerifyEmail(event.Email, event.FirstName, event.Role, event.Token)

	case dto.EventWelcome:
		var event dto.WelcomeEvent
		if err := json.Unmarshal([]byte(value), &event); err != nil {
			log.Printf("invalid welcome payload: %s", value)
			return err
		}
		log.Printf("welcome event: user_id=%d email=%s", event.UserID, event.Email)
		return h.MailService.SendWelcomeEmail(event.Email, event.FirstName, event.Role)
	}

	return fmt.Errorf("unknown event key: %s", key)
}
