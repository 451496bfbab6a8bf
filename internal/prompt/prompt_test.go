package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestConsoleConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "number selects option", input: "2\n", want: No},
		{name: "text selects option", input: "是\n", want: Yes},
		{name: "invalid then valid", input: "7\nabc\n1\n", want: Yes},
		{name: "last line without newline", input: "2", want: No},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			console := NewConsole(strings.NewReader(tt.input), &out)
			got, err := console.Confirm(Question, "覆盖文件", "out.xlsx exists", []string{Yes, No})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
			if !strings.Contains(out.String(), "[question] 覆盖文件") {
				t.Fatalf("expected title in output, got:\n%s", out.String())
			}
		})
	}
}

func TestConsoleConfirm_ReusesReaderAcrossPrompts(t *testing.T) {
	console := NewConsole(strings.NewReader("1\n2\n"), nil)

	first, err := console.Confirm(Question, "a", "", []string{Yes, No})
	if err != nil {
		t.Fatalf("first prompt: %v", err)
	}
	second, err := console.Confirm(Question, "b", "", []string{Yes, No})
	if err != nil {
		t.Fatalf("second prompt: %v", err)
	}
	if first != Yes || second != No {
		t.Fatalf("unexpected answers %q, %q", first, second)
	}
}

func TestConsoleConfirm_EOFWithoutAnswer(t *testing.T) {
	console := NewConsole(strings.NewReader(""), nil)
	if _, err := console.Confirm(Warning, "t", "", []string{OK, Cancel}); err == nil {
		t.Fatalf("expected error on empty input")
	}
}

func TestConsoleConfirm_SingleOptionDoesNotRead(t *testing.T) {
	console := NewConsole(strings.NewReader(""), nil)
	got, err := console.Confirm(Info, "done", "", []string{OK})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != OK {
		t.Fatalf("expected %q, got %q", OK, got)
	}
}

func TestFixed(t *testing.T) {
	if got, _ := (Fixed{Choice: No}).Confirm(Question, "", "", []string{Yes, No}); got != No {
		t.Fatalf("expected configured choice, got %q", got)
	}
	if got, _ := (Fixed{}).Confirm(Question, "", "", []string{Yes, No}); got != Yes {
		t.Fatalf("expected first option, got %q", got)
	}
	if _, err := (Fixed{}).Confirm(Question, "", "", nil); !errors.Is(err, ErrNoOptions) {
		t.Fatalf("expected ErrNoOptions, got %v", err)
	}
}
