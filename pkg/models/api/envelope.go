package api

// Envelope is the uniform response wrapper returned by every reporting
// operation. Exactly one of Result/Error is populated.
type Envelope struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Success(result any) Envelope {
	return Envelope{Success: true, Result: result}
}

func Failure(message string) Envelope {
	return Envelope{Success: false, Error: message}
}
