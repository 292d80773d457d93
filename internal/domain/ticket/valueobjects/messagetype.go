package valueobjects

import "fmt"

// MessageType classifies a thread message. Status-change messages are written
// by the transition engine so the thread visibly narrates lifecycle events.
type MessageType string

const (
	MessageTypeText         MessageType = "text"
	MessageTypeAttachment   MessageType = "attachment"
	MessageTypeStatusChange MessageType = "status_change"
)

var validMessageTypes = map[MessageType]bool{
	MessageTypeText:         true,
	MessageTypeAttachment:   true,
	MessageTypeStatusChange: true,
}

func (mt MessageType) String() string {
	return string(mt)
}

func (mt MessageType) IsValid() bool {
	return validMessageTypes[mt]
}

func NewMessageType(s string) (MessageType, error) {
	mt := MessageType(s)
	if !mt.IsValid() {
		return "", fmt.Errorf("invalid message type: %s", s)
	}
	return mt, nil
}
