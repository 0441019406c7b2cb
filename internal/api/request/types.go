package request

// SubmitWordRequest is the request body for playing a word
type SubmitWordRequest struct {
	Word string `json:"word"`
}
