package dto

import (
	"time"

	"github.com/spec-kit/ack-hub/internal/domain"
)

// TypeRequest payload for creating or updating a custom type.
type TypeRequest struct {
	Title            string   `json:"title"`
	ShortDescription string   `json:"short_description"`
	PrimaryStatement string   `json:"primary_statement"`
	Subtitle         string   `json:"subtitle"`
	BodyText         string   `json:"body_text"`
	Rules            []string `json:"rules"`
}

// TypeResponse represents a catalog entry.
type TypeResponse struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	ShortDescription string              `json:"short_description"`
	Content          *domain.TypeContent `json:"content"`
	Builtin          bool                `json:"builtin"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}
