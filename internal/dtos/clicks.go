package dtos

import "time"

type ClickItem struct {
	Timestamp  time.Time `json:"timestamp"`
	UserAgent  string    `json:"user_agent,omitempty"`
	ClientAddr string    `json:"client_addr,omitempty"`
}
