package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskWhatsAppSend = "whatsapp.send"

// WhatsAppSendPayload carries an outbound message; To is already a canonical JID.
type WhatsAppSendPayload struct {
	To             string `json:"to"`
	Message        string `json:"message"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

func NewWhatsAppSendTask(payload WhatsAppSendPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWhatsAppSend, data), nil
}

func ParseWhatsAppSendPayload(task *asynq.Task) (WhatsAppSendPayload, error) {
	var payload WhatsAppSendPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return WhatsAppSendPayload{}, err
	}
	return payload, nil
}
