package Iservices

import (
	"context"

	"whatsapp-agent/internal/domain/entities"
)

// IResponseGenerator turns the conversation so far into the next assistant
// reply. Implementations talk to an external model API and must report
// failures to the caller rather than swallowing them.
type IResponseGenerator interface {
	Generate(ctx context.Context, history []entities.Message) (string, error)
}
