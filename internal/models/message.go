package models

import (
	"fmt"
	"time"
)

type MessageType string

const (
	MessageTypeUser   MessageType = "user"
	MessageTypeSystem MessageType = "system"
)

// SystemActor is the sender recorded on messages the tracker writes itself.
const SystemActor = "System"

type Message struct {
	ID          uint64      `gorm:"column:message_id;primarykey" json:"message_id"`
	TaskID      uint64      `gorm:"not null;index" json:"task_id"`
	Sender      string      `gorm:"type:varchar(255);not null" json:"sender"`
	Body        string      `gorm:"column:message;type:text;not null" json:"message"`
	Timestamp   time.Time   `gorm:"autoCreateTime" json:"timestamp"`
	MessageType MessageType `gorm:"type:varchar(10);not null;default:'user'" json:"message_type"`
}

// SystemText renders the attributed form a system message is stored in.
func SystemText(actor, text string) string {
	return fmt.Sprintf("%s updated: %s", actor, text)
}

// NewSystemMessage builds an audit entry attributed to SystemActor.
func NewSystemMessage(taskID uint64, text string) *Message {
	return &Message{
		TaskID:      taskID,
		Sender:      SystemActor,
		Body:        SystemText(SystemActor, text),
		MessageType: MessageTypeSystem,
	}
}
