package llm

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"
)

// callRecord is one line of the completion call log.
type callRecord struct {
	Time       string `json:"time"`
	Prompt     string `json:"prompt"`
	Reply      string `json:"reply,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// LoggingClient decorates a Client with an append-only JSONL call log.
// Log write failures never fail the completion; they are reported as
// warnings only.
type LoggingClient struct {
	inner   Client
	logPath string
}

// NewLoggingClient wraps inner so every completion is appended to the
// JSONL file at logPath.
func NewLoggingClient(inner Client, logPath string) *LoggingClient {
	return &LoggingClient{inner: inner, logPath: logPath}
}

// Complete delegates to the wrapped client and records the exchange.
func (c *LoggingClient) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	reply, err := c.inner.Complete(ctx, prompt)

	record := callRecord{
		Time:       start.UTC().Format(time.RFC3339),
		Prompt:     prompt,
		Reply:      reply,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		record.Error = err.Error()
	}
	c.append(record)

	return reply, err
}

func (c *LoggingClient) append(record callRecord) {
	line, err := json.Marshal(record)
	if err != nil {
		log.Printf("Warning: failed to encode LLM call record: %v", err)
		return
	}
	f, err := os.OpenFile(c.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("Warning: failed to open LLM call log %s: %v", c.logPath, err)
		return
	}
	defer func() { _ = f.Close() }()
	if _, err := f.Write(append(line, '\n')); err != nil {
		log.Printf("Warning: failed to write LLM call log: %v", err)
	}
}
