package dto

// OTPRequest asks for a one-time sign-in code.
type OTPRequest struct {
	Email string `json:"email"`
}

// VerifyRequest exchanges a one-time code for a session.
type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// SessionResponse carries the issued token and the signed-in profile.
type SessionResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

// ProfileResponse describes the signed-in user.
type ProfileResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name,omitempty"`
	RewardPoints int    `json:"reward_points"`
}
