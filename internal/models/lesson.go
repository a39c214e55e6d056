package models

import (
	"encoding/json"
	"fmt"

	"LearnTrack/internal/app_errors"

	"github.com/google/uuid"
)

type ContentType string

const (
	ContentTypeVideo    ContentType = "video"
	ContentTypeText     ContentType = "text"
	ContentTypeDocument ContentType = "document"
)

// LessonContent is a closed set: exactly one payload shape per content type.
// Reading fields of the wrong variant is a type error, not a nil check.
type LessonContent interface {
	ContentType() ContentType
}

type Timestamp struct {
	Seconds int    `json:"time"`
	Label   string `json:"label"`
}

type VideoContent struct {
	SourceURL  string      `json:"video_url"`
	Transcript string      `json:"transcript,omitempty"`
	Timestamps []Timestamp `json:"timestamps,omitempty"`
}

func (VideoContent) ContentType() ContentType { return ContentTypeVideo }

type TextContent struct {
	Body string `json:"main_content"`
}

func (TextContent) ContentType() ContentType { return ContentTypeText }

type DocumentContent struct {
	FileURL  string `json:"document_url"`
	FileType string `json:"file_type"`
}

func (DocumentContent) ContentType() ContentType { return ContentTypeDocument }

type Lesson struct {
	ID          uuid.UUID     `json:"id" validate:"required"`
	ModuleID    uuid.UUID     `json:"module_id"`
	Title       string        `json:"title" validate:"required"`
	Type        ContentType   `json:"content_type" validate:"required"`
	EstDuration int           `json:"estimated_duration"`
	Order       int           `json:"order" validate:"min=0"`
	Content     LessonContent `json:"-"`
}

type lessonWire struct {
	ID          uuid.UUID       `json:"id"`
	ModuleID    uuid.UUID       `json:"module_id"`
	Title       string          `json:"title"`
	Type        ContentType     `json:"content_type"`
	EstDuration int             `json:"estimated_duration"`
	Order       int             `json:"order"`
	ContentData json.RawMessage `json:"content_data,omitempty"`
}

// UnmarshalJSON decodes the content payload into the variant named by the
// content_type discriminator. Unknown discriminators are rejected here so a
// bad record never reaches the traversal layer.
func (l *Lesson) UnmarshalJSON(data []byte) error {
	var w lessonWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	l.ID = w.ID
	l.ModuleID = w.ModuleID
	l.Title = w.Title
	l.Type = w.Type
	l.EstDuration = w.EstDuration
	l.Order = w.Order
	l.Content = nil

	if len(w.ContentData) == 0 || string(w.ContentData) == "null" {
		return nil
	}

	switch w.Type {
	case ContentTypeVideo:
		var c VideoContent
		if err := json.Unmarshal(w.ContentData, &c); err != nil {
			return fmt.Errorf("decoding video content for lesson %s: %w", w.ID, err)
		}
		l.Content = c
	case ContentTypeText:
		var c TextContent
		if err := json.Unmarshal(w.ContentData, &c); err != nil {
			return fmt.Errorf("decoding text content for lesson %s: %w", w.ID, err)
		}
		l.Content = c
	case ContentTypeDocument:
		var c DocumentContent
		if err := json.Unmarshal(w.ContentData, &c); err != nil {
			return fmt.Errorf("decoding document content for lesson %s: %w", w.ID, err)
		}
		l.Content = c
	default:
		return fmt.Errorf("lesson %s type %q: %w", w.ID, w.Type, app_errors.ErrUnknownContentType)
	}
	return nil
}

func (l Lesson) MarshalJSON() ([]byte, error) {
	w := lessonWire{
		ID:          l.ID,
		ModuleID:    l.ModuleID,
		Title:       l.Title,
		Type:        l.Type,
		EstDuration: l.EstDuration,
		Order:       l.Order,
	}
	if l.Content != nil {
		data, err := json.Marshal(l.Content)
		if err != nil {
			return nil, err
		}
		w.ContentData = data
	}
	return json.Marshal(w)
}
