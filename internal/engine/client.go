package engine

import "context"

// Client is the minimal interface stage callers use to reach the
// text-completion service. *gemini.Client satisfies it.
type Client interface {
	GenerateJSON(ctx context.Context, instruction string, schema map[string]interface{}) (string, error)
}

// CredentialSource reports whether a usable API credential is present.
// Mirrors config.CredentialSource so the engine carries no config
// dependency.
type CredentialSource interface {
	Resolve() (key string, ok bool)
}
