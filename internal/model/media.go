package model

import "time"

// Media is an uploaded asset known to the content store.
// Filename is the name under which the binary is served from the media directory and is
// unique; repeated uploads of the same asset get numeric suffixes (logo.png, logo-2.png).
type Media struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Alt         string    `json:"alt"`
	CreatedAt   time.Time `json:"created_at"`
}
