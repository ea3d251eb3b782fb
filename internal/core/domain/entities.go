package domain

import (
	"time"
)

// Setting is a named configuration value persisted across requests.
// The Google API key lives under SettingAPIKey.
type Setting struct {
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingAPIKey is the setting name holding the Static Maps API key.
const SettingAPIKey = "google_maps_api_key"

// Snapshot is a static map image stored in the media library.
type Snapshot struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Filename    string    `json:"filename"`
	AltText     string    `json:"alt_text,omitempty"`
	Folder      string    `json:"folder,omitempty"`
	URL         string    `json:"url"`
	Path        string    `json:"path"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// SnapshotRequest asks the worker to download a built map URL and
// store the image. It travels over the message broker as JSON.
type SnapshotRequest struct {
	Title    string `json:"title"`
	Filename string `json:"filename"`
	AltText  string `json:"alt_text,omitempty"`
	Folder   string `json:"folder,omitempty"`
	URL      string `json:"url"`
}

// FetchedImage is the result of downloading a map image.
type FetchedImage struct {
	Status      int
	ContentType string
	Body        []byte
}

// StoredFile describes a file written into the media library.
type StoredFile struct {
	Path      string
	SizeBytes int64
}

// MediaMeta is the metadata attached to a stored snapshot image.
type MediaMeta struct {
	Title       string
	Filename    string
	AltText     string
	Folder      string
	ContentType string
}
