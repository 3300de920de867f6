package resumes

import "time"

type resumeResponse struct {
	ID            string    `json:"id"`
	Filename      string    `json:"filename"`
	CandidateName string    `json:"candidateName"`
	HasRoast      bool      `json:"hasRoast"`
	HasFeedback   bool      `json:"hasFeedback"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type resumeDetailResponse struct {
	resumeResponse
	ExtractedText string `json:"extractedText"`
}

func toResponse(r Resume) resumeResponse {
	return resumeResponse{
		ID:            r.ID,
		Filename:      r.Filename,
		CandidateName: r.CandidateName,
		HasRoast:      r.RoastResponse != "",
		HasFeedback:   r.FeedbackResponse != "",
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toDetailResponse(r Resume) resumeDetailResponse {
	return resumeDetailResponse{
		resumeResponse: toResponse(r),
		ExtractedText:  r.ExtractedText,
	}
}
