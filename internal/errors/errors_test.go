package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "hook order",
			code:    "E002",
			wantMsg: "Hook order changed",
			wantCat: CategoryRuntime,
		},
		{
			name:    "config error",
			code:    "E100",
			wantMsg: "Invalid configuration",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("E101").WithDetail(`"triple"`)
	want := `E101: Unknown demo action ("triple")`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	plain := Newf(CategoryCLI, "bad %s", "thing")
	if plain.Error() != "bad thing" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "bad thing")
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("listen failed")
	err := New("E102").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E100") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E002")
	if FromError(orig, "E100") != orig {
		t.Error("FromError should return an existing VangoError unchanged")
	}

	wrapped := FromError(stderrors.New("boom"), "E100")
	if wrapped.Code != "E100" || wrapped.Wrapped == nil {
		t.Errorf("unexpected wrapped error: %+v", wrapped)
	}
}

func TestHasCode(t *testing.T) {
	err := New("E101")
	if !HasCode(err, "E101") {
		t.Error("HasCode should match the error's code")
	}
	if HasCode(stderrors.New("x"), "E101") {
		t.Error("HasCode should not match plain errors")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E101").WithDetail("unknown action").Wrap(stderrors.New("cause"))
	out := err.Format()

	for _, want := range []string{"ERROR E101: Unknown demo action", "unknown action", "Cause: cause", "Hint:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}

	if got := err.FormatCompact(); got != "E101: Unknown demo action: unknown action" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if len(lines) < 3 {
		t.Errorf("expected at least 3 lines, got %v", lines)
	}
}

func TestRegistryCodes(t *testing.T) {
	for _, code := range GetAllCodes() {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" {
			t.Errorf("code %s has no message", code)
		}
	}
}
