package models

// ErrorResp is the uniform error body.
type ErrorResp struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// MessageResp carries a bare confirmation message.
type MessageResp struct {
	Message string `json:"message"`
}

// Pagination is the metadata block of every list envelope.
type Pagination struct {
	TotalCount    int64 `json:"total_count"`
	CurrentSkip   int64 `json:"current_skip"`
	CurrentLimit  int64 `json:"current_limit"`
	ReturnedCount int   `json:"returned_count"`
	HasNext       bool  `json:"has_next"`
	HasPrev       bool  `json:"has_prev"`
}

// CaseEnvelope is the response for case list endpoints. FiltersApplied
// echoes every recognized filter field, null when unset; clients depend on
// the shape being stable.
type CaseEnvelope struct {
	Cases          []Case             `json:"cases"`
	Pagination     Pagination         `json:"pagination"`
	FiltersApplied map[string]*string `json:"filters_applied"`
}

// ReportEnvelope is the response for report list endpoints.
type ReportEnvelope struct {
	Reports        []IncidentReport   `json:"reports"`
	Pagination     Pagination         `json:"pagination"`
	FiltersApplied map[string]*string `json:"filters_applied"`
}

// CaseMutationResp wraps a mutated case with a confirmation message.
type CaseMutationResp struct {
	Message string `json:"message"`
	Case    *Case  `json:"case"`
}

// RestoreResp confirms a restore with the human-readable case id.
type RestoreResp struct {
	Message string `json:"message"`
	CaseID  string `json:"case_id"`
}

// LoginResp is the auth token payload.
type LoginResp struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}

// LoginUser is the subset of a user surfaced on login.
type LoginUser struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
