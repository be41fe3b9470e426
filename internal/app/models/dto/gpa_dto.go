package dto

// TargetGPARequest asks the planner for required grades on ungraded
// courses.
type TargetGPARequest struct {
	TargetGPA *float64 `json:"targetGpa" binding:"required"`
}
