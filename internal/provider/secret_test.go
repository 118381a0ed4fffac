package provider

import (
	"strings"
	"testing"
)

func TestSecretRefStringNeverExposesValue(t *testing.T) {
	ref := SecretRef{Value: "sk-super-secret"}
	if s := ref.String(); strings.Contains(s, "secret") {
		t.Errorf("String() leaked the secret: %q", s)
	}
	ref = SecretRef{Env: "OPENAI_API_KEY"}
	if s := ref.String(); s != "env:OPENAI_API_KEY" {
		t.Errorf("String() = %q", s)
	}
	if s := (SecretRef{}).String(); s != "" {
		t.Errorf("zero ref String() = %q", s)
	}
}

func TestEnvResolver(t *testing.T) {
	var r EnvResolver

	v, err := r.Resolve(SecretRef{Value: "inline"})
	if err != nil || v != "inline" {
		t.Errorf("inline: got %q, %v", v, err)
	}

	t.Setenv("TEST_SECRET", "from-env")
	v, err = r.Resolve(SecretRef{Env: "TEST_SECRET"})
	if err != nil || v != "from-env" {
		t.Errorf("env: got %q, %v", v, err)
	}

	if _, err := r.Resolve(SecretRef{Env: "TEST_SECRET_UNSET"}); err == nil {
		t.Error("expected an error for an unset variable")
	}
	if _, err := r.Resolve(SecretRef{}); err == nil {
		t.Error("expected an error for an empty reference")
	}
}
