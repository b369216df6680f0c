package dto

// ProcessResult is the structured outcome of handling one inbound message.
// Error is only set when Success is false; Response carries the assistant
// text on success.
type ProcessResult struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Response string `json:"response,omitempty"`
}
