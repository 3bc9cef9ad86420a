package api

import "github.com/samcharles93/gff/internal/dump"

type ResponseError struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
}

type ErrorResponse struct {
	RequestID string        `json:"request_id"`
	Error     ResponseError `json:"error"`
}

type HealthResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Version   string `json:"version"`
}

type DecodeResponse struct {
	RequestID string         `json:"request_id"`
	Document  *dump.Document `json:"document"`
}

// ValidateResponse reports a verdict. Kind and Offset come from the decode
// error when there is one.
type ValidateResponse struct {
	RequestID string  `json:"request_id"`
	Valid     bool    `json:"valid"`
	Kind      string  `json:"kind,omitempty"`
	Offset    *uint64 `json:"offset,omitempty"`
	Error     string  `json:"error,omitempty"`
}

type SectionStat struct {
	Name   string `json:"name"`
	Offset uint32 `json:"offset"`
	Count  uint32 `json:"count"`
	Bytes  uint64 `json:"bytes"`
}

type StatsResponse struct {
	RequestID string        `json:"request_id"`
	Type      string        `json:"type"`
	Version   string        `json:"version"`
	Size      int           `json:"size"`
	Sections  []SectionStat `json:"sections"`
}
