// Package history records prompt resolutions in SQLite so past
// expansions stay inspectable after the output is gone.
package history

import (
	"time"

	"github.com/teranos/PRX/engine"
)

// Resolution is one recorded prompt resolution.
type Resolution struct {
	ID             int64     `json:"id"`
	PromptName     string    `json:"prompt_name"`
	ResolvedAt     time.Time `json:"resolved_at"`
	DurationMS     int64     `json:"duration_ms"`
	ContentBytes   int       `json:"content_bytes"`
	ReferenceCount int       `json:"reference_count"`
	FileCount      int       `json:"file_count"`
	CommandCount   int       `json:"command_count"`
	References     []string  `json:"references,omitempty"`
	Files          []string  `json:"files,omitempty"`
	Commands       []string  `json:"commands,omitempty"`
	HadCircular    bool      `json:"had_circular"`
	DepthExceeded  bool      `json:"depth_exceeded"`
	Executed       bool      `json:"executed"`
}

// FromResult builds a history record from one resolve outcome. The
// executed flag records whether commands actually ran, since results
// list discovered commands either way.
func FromResult(promptName string, res *engine.ResolveResult, duration time.Duration, executed bool) *Resolution {
	return &Resolution{
		PromptName:     promptName,
		ResolvedAt:     time.Now().UTC(),
		DurationMS:     duration.Milliseconds(),
		ContentBytes:   len(res.Content),
		ReferenceCount: len(res.References),
		FileCount:      len(res.FileReferences),
		CommandCount:   len(res.Commands),
		References:     res.References,
		Files:          res.FileReferences,
		Commands:       res.Commands,
		HadCircular:    res.HadCircularRefs,
		DepthExceeded:  res.MaxDepthExceeded,
		Executed:       executed,
	}
}
