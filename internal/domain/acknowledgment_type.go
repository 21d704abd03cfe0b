package domain

import "time"

// CustomTypePrefix marks catalog entries created at runtime.
const CustomTypePrefix = "custom-"

// TypeContent is the optional long-form text of an acknowledgment type.
type TypeContent struct {
	PrimaryStatement string   `json:"primary_statement"`
	Subtitle         *string  `json:"subtitle,omitempty"`
	BodyText         *string  `json:"body_text,omitempty"`
	NumberedRules    []string `json:"numbered_rules"`
}

// AcknowledgmentType is a document definition users can acknowledge.
type AcknowledgmentType struct {
	ID               string
	Title            string
	ShortDescription string
	Content          *TypeContent
	Builtin          bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Clone returns a deep copy so callers cannot mutate stored content.
func (t AcknowledgmentType) Clone() AcknowledgmentType {
	if t.Content == nil {
		return t
	}
	content := *t.Content
	if t.Content.Subtitle != nil {
		subtitle := *t.Content.Subtitle
		content.Subtitle = &subtitle
	}
	if t.Content.BodyText != nil {
		body := *t.Content.BodyText
		content.BodyText = &body
	}
	content.NumberedRules = append([]string(nil), t.Content.NumberedRules...)
	t.Content = &content
	return t
}
