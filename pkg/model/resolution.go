package model

import "time"

// Resolution is the persisted summary of one completed parse request.
type Resolution struct {
	ID             string            `json:"id"`
	Language       Language          `json:"language"`
	URI            string            `json:"uri"`
	Branch         string            `json:"branch"`
	DescriptorPath string            `json:"descriptor_path"`
	Commit         string            `json:"commit"`
	Valid          bool              `json:"valid"`
	Messages       map[string]string `json:"messages,omitempty"`
	SecondaryCount int               `json:"secondary_count"`
	DurationMS     int64             `json:"duration_ms"`
	CreatedAt      time.Time         `json:"created_at"`
}
