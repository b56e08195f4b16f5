package dto

type RateLimitCheckRequest struct {
	Fingerprint string `json:"fingerprint"`
}

type RateLimitCheckResponse struct {
	Allowed    bool   `json:"allowed"`
	Reason     string `json:"reason,omitempty"`
	RetryAfter int    `json:"retryAfter,omitempty"` // minutes
	Remaining  int    `json:"remaining,omitempty"`
}
