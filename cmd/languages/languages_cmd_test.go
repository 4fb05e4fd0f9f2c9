package languages

import (
	"bytes"
	"testing"
)

func TestLanguagesCommand_PrintsSupportedLanguagesAndExtensions(t *testing.T) {
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	expected := `◐ JavaScript (.js, .jsx, .mjs, .cjs) - Basic Tests
● Python (.py) - Actively Tested
◐ TypeScript (.ts, .mts, .cts) - Basic Tests
`

	if out.String() != expected {
		t.Fatalf("output = %q, want %q", out.String(), expected)
	}
}
