package config

import "os"

// credentialVars are the environment locations checked for the API
// credential, in priority order.
var credentialVars = []string{"GEMINI_API_KEY", "IMPACTSIM_API_KEY", "API_KEY"}

// CredentialSource reports whether a usable API credential is present.
// Presence only: no format check, no liveness check, never an error.
// Callers inject it as a capability so tests run without env mutation.
type CredentialSource interface {
	Resolve() (key string, ok bool)
}

// StaticCredential is a fixed credential value. The empty string resolves
// to absent.
type StaticCredential string

func (s StaticCredential) Resolve() (string, bool) {
	return string(s), s != ""
}

// EnvCredential resolves the credential from environment variables.
type EnvCredential struct {
	Vars []string
}

// DefaultEnvCredential checks the standard variable names.
func DefaultEnvCredential() *EnvCredential {
	return &EnvCredential{Vars: credentialVars}
}

func (e *EnvCredential) Resolve() (string, bool) {
	return lookupFirst(e.Vars)
}

func lookupFirst(vars []string) (string, bool) {
	for _, v := range vars {
		if key := os.Getenv(v); key != "" {
			return key, true
		}
	}
	return "", false
}

// Credentials returns the credential source for this config: the
// configured key when set (env overrides were already folded in by
// Load), otherwise a live env lookup.
func (c *Config) Credentials() CredentialSource {
	if c.LLM.APIKey != "" {
		return StaticCredential(c.LLM.APIKey)
	}
	return DefaultEnvCredential()
}
