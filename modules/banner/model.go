package banner

import (
	"time"

	"courseflow-server/modules/course"
	"courseflow-server/modules/postprocess"
)

// GenerateRequest - banner generation request from the wizard.
type GenerateRequest struct {
	CourseDetails     course.Details           `json:"courseDetails"`
	DesignPreferences course.DesignPreferences `json:"designPreferences"`
	Branding          course.Branding          `json:"branding"`
	LogoImages        []string                 `json:"logoImages,omitempty"` // data URLs, max 4
}

// GenerateResponse - two generated images plus the extracted color pair.
type GenerateResponse struct {
	Success      bool                    `json:"success"`
	Banner       string                  `json:"banner,omitempty"`     // text baked in
	Background   string                  `json:"background,omitempty"` // clean hero backdrop
	Colors       *postprocess.ColorPair  `json:"colors,omitempty"`
	GeneratedAt  time.Time               `json:"generatedAt,omitempty"`
	ErrorMessage string                  `json:"errorMessage,omitempty"`
}

// Job statuses for the async queue.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Job - one queued banner generation request.
type Job struct {
	JobID      string          `json:"jobId"`
	Request    GenerateRequest `json:"request"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
}

// JobStatus - persisted job state under banner:job:<id>.
type JobStatus struct {
	JobID     string            `json:"jobId"`
	Status    string            `json:"status"`
	Error     string            `json:"error,omitempty"`
	Result    *GenerateResponse `json:"result,omitempty"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// EnqueueResponse - async enqueue reply.
type EnqueueResponse struct {
	Success       bool   `json:"success"`
	JobID         string `json:"jobId,omitempty"`
	Queue         string `json:"queue,omitempty"`
	QueuePosition int64  `json:"queuePosition,omitempty"`
	ErrorMessage  string `json:"errorMessage,omitempty"`
}
