package notify

import (
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Type string

const (
	TypeAppointmentConfirmed   Type = "appointment_confirmed"
	TypeAppointmentCancelled   Type = "appointment_cancelled"
	TypeAppointmentRescheduled Type = "appointment_rescheduled"
	TypePaymentReceived        Type = "payment_received"
	TypeSystem                 Type = "system"
	TypeLoyaltyReward          Type = "loyalty_reward"
	TypeBirthday               Type = "birthday"
	TypeMarketing              Type = "marketing"
)

// Message is a notification waiting to be stored and delivered.
type Message struct {
	UserID uint
	Type   Type
	Title  string
	Body   string
	Link   string
}

func (m Message) Notification() models.Notification {
	return models.Notification{
		UserID:  m.UserID,
		Type:    string(m.Type),
		Title:   m.Title,
		Message: m.Body,
		Link:    m.Link,
	}
}

func Notifications(msgs []Message) []models.Notification {
	out := make([]models.Notification, 0, len(msgs))
	for _, m := range msgs {
		if m.UserID == 0 {
			continue
		}
		out = append(out, m.Notification())
	}
	return out
}
