package models

import "encoding/json"

// MaterialType represents the kind of content a lesson material holds
type MaterialType string

const (
	MaterialTypeVideo MaterialType = "video"
	MaterialTypeAudio MaterialType = "audio"
	MaterialTypeImage MaterialType = "image"
	MaterialTypeText  MaterialType = "text"
)

// MaterialMetadata holds optional storage location hints for a material.
// Any or all fields may be empty; the asset resolver falls back to
// scanning and path guessing when they are.
type MaterialMetadata struct {
	Bucket   string `json:"bucket,omitempty"`
	Path     string `json:"path,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// ParseMaterialMetadata parses a raw metadata blob. Malformed or empty
// blobs yield empty metadata rather than an error; some deployments
// store nothing useful here.
func ParseMaterialMetadata(raw string) MaterialMetadata {
	var meta MaterialMetadata
	if raw == "" {
		return meta
	}
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return MaterialMetadata{}
	}
	return meta
}

// Material represents a lesson material record
type Material struct {
	ID       int              `json:"id"`
	LessonID int              `json:"lessonId,omitempty"`
	Type     MaterialType     `json:"type"`
	RawURL   string           `json:"url,omitempty"`
	Content  string           `json:"content,omitempty"`
	Metadata MaterialMetadata `json:"metadata,omitempty"`
}

// MaterialView is a material with its resolved, fetchable URL attached.
// ResolvedURL is derived per fetch and never persisted.
type MaterialView struct {
	Material
	ResolvedURL string `json:"resolvedUrl"`
}
