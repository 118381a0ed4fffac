package provider

import (
	"fmt"
	"os"
)

// SecretRef points at a credential without embedding it in logs or stored
// settings. Exactly one of Value or Env should be set: Value carries the
// secret inline, Env names an environment variable holding it.
type SecretRef struct {
	Value string `json:"value,omitempty"`
	Env   string `json:"env,omitempty"`
}

// String masks the secret so a SecretRef is safe to log by accident.
func (s SecretRef) String() string {
	if s.Env != "" {
		return "env:" + s.Env
	}
	if s.Value != "" {
		return "***"
	}
	return ""
}

// IsZero reports whether the reference points at nothing.
func (s SecretRef) IsZero() bool { return s.Value == "" && s.Env == "" }

// SecretResolver turns a SecretRef into the plaintext credential. The
// resolved value is used only at handle construction time and never logged.
type SecretResolver interface {
	Resolve(ref SecretRef) (string, error)
}

// EnvResolver resolves inline values directly and Env references from the
// process environment.
type EnvResolver struct{}

func (EnvResolver) Resolve(ref SecretRef) (string, error) {
	if ref.Value != "" {
		return ref.Value, nil
	}
	if ref.Env != "" {
		v := os.Getenv(ref.Env)
		if v == "" {
			return "", fmt.Errorf("environment variable %s is not set", ref.Env)
		}
		return v, nil
	}
	return "", fmt.Errorf("empty secret reference")
}

// DefaultSecretResolver is used wherever no resolver is injected.
var DefaultSecretResolver SecretResolver = EnvResolver{}
