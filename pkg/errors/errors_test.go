package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidQuantity, "test message: %s", "value")

	if err.Code != ErrCodeInvalidQuantity {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidQuantity)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_QUANTITY: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidDocument, cause, "failed to decode")

	if err.Code != ErrCodeInvalidDocument {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDocument)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidQuantity, "test"),
			code:     ErrCodeInvalidQuantity,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidQuantity, "test"),
			code:     ErrCodeInvalidDocument,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInvalidDocument, New(ErrCodeInvalidQuantity, "inner"), "outer"),
			code:     ErrCodeInvalidDocument,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidQuantity,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidQuantity,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeDuplicateShapeID, "test"),
			expected: ErrCodeDuplicateShapeID,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidQuantity, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAnnotate(t *testing.T) {
	cause := errors.New("strconv failure")
	inner := Wrap(ErrCodeInvalidQuantity, cause, "invalid length %q", "1x")

	got := Annotate(inner, "%s.%s", "a", "x")
	if got.Code != ErrCodeInvalidQuantity {
		t.Errorf("Code = %v, want %v", got.Code, ErrCodeInvalidQuantity)
	}
	want := `INVALID_QUANTITY: a.x: invalid length "1x": strconv failure`
	if got.Error() != want {
		t.Errorf("Error() = %q, want %q", got.Error(), want)
	}
	if UserMessage(got) != `a.x: invalid length "1x"` {
		t.Errorf("UserMessage() = %q", UserMessage(got))
	}
	if !errors.Is(got, cause) {
		t.Error("cause should stay in the chain")
	}

	plain := Annotate(errors.New("boom"), "page.width")
	if plain.Code != ErrCodeInternal || plain.Error() != "INTERNAL_ERROR: page.width: boom" {
		t.Errorf("Annotate(plain) = %q", plain.Error())
	}
}

func TestWarning(t *testing.T) {
	w := Fallback("s1", "gradient %q has fewer than 2 colors", "#f00")
	if w.Code != ErrCodeStyleFallback {
		t.Errorf("Code = %v, want %v", w.Code, ErrCodeStyleFallback)
	}
	want := `STYLE_FALLBACK: s1: gradient "#f00" has fewer than 2 colors`
	if w.String() != want {
		t.Errorf("String() = %q, want %q", w.String(), want)
	}

	untargeted := Warning{Code: ErrCodeStyleFallback, Message: "x"}
	if untargeted.String() != "STYLE_FALLBACK: x" {
		t.Errorf("String() = %q", untargeted.String())
	}
}
