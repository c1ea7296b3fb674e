package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
)

type samplePayload struct {
	Name     string `json:"name" validate:"required"`
	Currency string `json:"currency" validate:"omitempty,oneof=KES USD EUR"`
}

func decode(t *testing.T, body string) (*samplePayload, error) {
	t.Helper()
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))
	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	return &payload, err
}

func TestDecodeJSONBodyValid(t *testing.T) {
	payload, err := decode(t, `{"name":"Duka Letu","currency":"KES"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Name != "Duka Letu" {
		t.Fatalf("expected decoded name, got %q", payload.Name)
	}
}

func TestDecodeJSONBodyMissingRequiredField(t *testing.T) {
	_, err := decode(t, `{"currency":"KES"}`)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected %s, got %v", pkgerrors.CodeValidation, err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %#v", typed.Details())
	}
	if details["name"] != "is required" {
		t.Fatalf("expected json field name in details, got %#v", details)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	_, err := decode(t, `{"name":"Duka","bogus":true}`)
	if err == nil {
		t.Fatal("expected an error for unknown fields")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected %s, got %v", pkgerrors.CodeValidation, err)
	}
}

func TestDecodeJSONBodyInvalidEnum(t *testing.T) {
	_, err := decode(t, `{"name":"Duka","currency":"GBP"}`)
	if err == nil {
		t.Fatal("expected a validation error for currency")
	}
}

func TestDecodeJSONBodyMalformedJSON(t *testing.T) {
	_, err := decode(t, `{"name":`)
	if err == nil {
		t.Fatal("expected a decode error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected %s, got %v", pkgerrors.CodeValidation, err)
	}
}
