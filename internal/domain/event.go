package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// AssessmentRequest is the JSON body of a source message: the five
// observations plus an optional locale for the prediction details.
type AssessmentRequest struct {
	RiskInput
	Locale string `json:"locale,omitempty"`
}
