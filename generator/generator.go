package generator

import "context"

// Message is one prior turn handed to the model as context.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type Generator interface {
	Generate(ctx context.Context, history []Message, input string) (string, error)
}
