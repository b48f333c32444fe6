package models

import "time"

type Notification struct {
	Message     string    `json:"message"`
	SourceLabel string    `json:"sourceLabel"`
	ShownAt     time.Time `json:"shownAt"`
}
