package requests

// SubmitFeedbackRequest is one success or issue report for a model.
type SubmitFeedbackRequest struct {
	ModelID string `json:"modelId" binding:"required"`
	Success bool   `json:"success"`
	Issue   string `json:"issue,omitempty"`
	Details string `json:"details,omitempty"`
}
