package resumes

import (
	"strings"
	"time"
)

// Resume is an uploaded resume document owned by a user. Filename and Data
// are set together at creation and only replaced wholesale by an explicit
// update; the cached roast/feedback responses are written only by explicit
// save actions.
type Resume struct {
	ID               string
	UserID           string
	Filename         string
	Data             []byte
	ExtractedText    string
	CandidateName    string
	RoastResponse    string
	FeedbackResponse string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ContentType returns the MIME type for download/view responses based on
// the stored filename.
func (r Resume) ContentType() string {
	if strings.HasSuffix(strings.ToLower(r.Filename), ".pdf") {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}
