package domain

import "time"

type Message struct {
	ID           int32  `json:"id"`
	SenderID     int32  `json:"sender_id"`
	ReceiverID   int32  `json:"receiver_id"`
	Content      string `json:"content"`
	SenderName   string `json:"sender_name,omitempty"`
	ReceiverName string `json:"receiver_name,omitempty"`
	CreatedOn    time.Time `json:"created_on"`
}
