package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PageEnvelope is the list variant of SuccessEnvelope.
type PageEnvelope struct {
	Data any `json:"data"`
	Page any `json:"page"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
