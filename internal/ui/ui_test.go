package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"hostname":            "Hostname",
		"route_53_zone_id":    "Route 53 Zone ID",
		"route_53_record_ttl": "Route 53 Record TTL",
		"shared_secret":       "Shared Secret",
		"table-logical-id":    "Table Logical ID",
	}
	for in, want := range tests {
		if got := Label(in); got != want {
			t.Errorf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		err  string
		want string
	}{
		{"operation error STS: GetCallerIdentity, api error ExpiredToken: The security token included in the request is expired", "expired"},
		{"api error InvalidClientTokenId: The security token included in the request is invalid", "ddns login"},
		{"failed to retrieve credentials: no EC2 IMDS role found", "--profile"},
		{"api error AccessDeniedException: not authorized", "Access denied"},
		{"dial tcp 127.0.0.1:4566: connect: connection refused", "--endpoint-url"},
		{"stack verification failed for \"x\": stack not found", ""},
	}
	for _, tt := range tests {
		got := Hint(tt.err)
		if tt.want == "" {
			if got != "" {
				t.Errorf("Hint(%q) = %q, want none", tt.err, got)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("Hint(%q) = %q, want it to mention %q", tt.err, got, tt.want)
		}
	}
}

func TestErrorMessageKeepsOriginal(t *testing.T) {
	msg := ErrorMessage("Provisioning failed", errors.New("hosted zone lookup failed for \"example.com\""))
	if !strings.Contains(msg, "example.com") {
		t.Errorf("ErrorMessage() dropped the error text: %q", msg)
	}
}

func TestBoxWidth(t *testing.T) {
	box := BoxWidth("Hostname  office\nTTL       300", "Record", 80)
	lines := strings.Split(box, "\n")
	if len(lines) != 4 {
		t.Fatalf("box has %d lines, want 4:\n%s", len(lines), box)
	}
	width := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Errorf("line %d has width %d, want %d", i, w, width)
		}
	}
	if !strings.Contains(lines[0], "Record") {
		t.Errorf("title missing from %q", lines[0])
	}

	narrow := BoxWidth(strings.Repeat("x", 100), "", 40)
	for i, line := range strings.Split(narrow, "\n") {
		if w := lipgloss.Width(line); w > 40 {
			t.Errorf("line %d is %d wide on a 40 column terminal", i, w)
		}
	}
}
