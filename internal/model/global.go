package model

import "time"

// Global is a singleton content document addressed by slug (e.g. "home-page").
// Data holds the raw, possibly partial JSON object as authored in the CMS.
type Global struct {
	Slug      string         `json:"slug"`
	Data      map[string]any `json:"data"`
	UpdatedAt time.Time      `json:"updated_at"`
}
