package landing

import (
	"time"

	"courseflow-server/modules/course"
)

// Record - one published landing page, keyed by its short id.
type Record struct {
	ID            string                 `json:"id"`
	CourseDetails course.Details         `json:"courseDetails"`
	Assets        course.GeneratedAssets `json:"generatedAssets"`
	Theme         course.Theme           `json:"theme"`
	Form          course.LandingConfig   `json:"landingConfig"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// CreateRequest - payload for publishing a landing page.
type CreateRequest struct {
	CourseDetails course.Details         `json:"courseDetails"`
	Assets        course.GeneratedAssets `json:"generatedAssets"`
	Theme         course.Theme           `json:"theme"`
	Form          course.LandingConfig   `json:"landingConfig"`
}

type CreateResponse struct {
	Success      bool   `json:"success"`
	ID           string `json:"id,omitempty"`
	URL          string `json:"url,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

type GetResponse struct {
	Success      bool    `json:"success"`
	Landing      *Record `json:"landing,omitempty"`
	ErrorMessage string  `json:"error,omitempty"`
}

// RegisterRequest - a visitor registration submitted from a landing page.
// Forwarded to the remote spreadsheet backend as-is.
type RegisterRequest struct {
	LandingID      string `json:"landingId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	ReferralSource string `json:"referralSource,omitempty"`
	Message        string `json:"message,omitempty"`
}

type RegisterResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error,omitempty"`
}
