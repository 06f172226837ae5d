package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

func Title(text string) string {
	return H1.Render(text)
}

func Muted(text string) string {
	return BodyMuted.Render(text)
}

func Success(text string) string {
	return StatusSuccess.Render(S.Check + " " + text)
}

func Warning(text string) string {
	return StatusWarning.Render(S.Warn + " " + text)
}

func Error(text string) string {
	return StatusError.Render(S.Cross + " " + text)
}

func Info(text string) string {
	return lipgloss.NewStyle().
		Foreground(C.Accent).
		Render(S.Info + " " + text)
}

// Label turns a snake_case or kebab-case key into a display label, keeping
// well known acronyms upper case.
func Label(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, w := range words {
		switch strings.ToLower(w) {
		case "id", "ttl", "aws", "arn", "dns", "url":
			words[i] = strings.ToUpper(w)
		default:
			words[i] = titleCaser.String(w)
		}
	}
	return strings.Join(words, " ")
}

func ErrorMessage(title string, err ...error) string {
	var b strings.Builder
	b.WriteString(StatusError.Render(S.Cross + " " + title))

	if len(err) > 0 && err[0] != nil {
		msg := err[0].Error()
		b.WriteString("\n")
		b.WriteString(Body.Render(msg))
		if hint := Hint(msg); hint != "" {
			b.WriteString("\n")
			b.WriteString(BodyMuted.Render(hint))
		}
	}
	return b.String()
}

func ErrorBox(title string, err ...error) string {
	return Box(ErrorMessage(title, err...))
}

// Hint suggests a fix for common AWS credential and connectivity failures.
func Hint(errStr string) string {
	lower := strings.ToLower(errStr)
	switch {
	case strings.Contains(errStr, "ExpiredToken"):
		return "Your AWS session has expired - refresh your credentials"
	case strings.Contains(errStr, "InvalidClientTokenId"),
		strings.Contains(errStr, "UnrecognizedClientException"),
		strings.Contains(errStr, "SignatureDoesNotMatch"):
		return "Invalid AWS credentials - run 'ddns login' or check your profile"
	case strings.Contains(lower, "failed to retrieve credentials"),
		strings.Contains(lower, "no ec2 imds role found"),
		strings.Contains(lower, "failed to refresh cached credentials"):
		return "No AWS credentials found - run 'ddns login' or pass --profile"
	case strings.Contains(errStr, "AccessDenied"):
		return "Access denied - the credentials lack permission for this call"
	case strings.Contains(lower, "connection refused"),
		strings.Contains(lower, "no such host"):
		return "Cannot reach AWS - check your network or --endpoint-url"
	case strings.Contains(errStr, "Throttling"),
		strings.Contains(errStr, "ProvisionedThroughputExceeded"):
		return "Rate limit exceeded - please try again later"
	}
	return ""
}

// Box draws content in a rounded border sized to the terminal.
func Box(content string, title ...string) string {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width = 80
	}
	t := ""
	if len(title) > 0 {
		t = title[0]
	}
	return BoxWidth(content, t, width)
}

// BoxWidth is Box for a terminal termWidth cells wide.
func BoxWidth(content, title string, termWidth int) string {
	const (
		boxOverhead    = 4
		terminalMargin = 2
		titleDashes    = 2
	)

	longest := 0
	for _, line := range strings.Split(content, "\n") {
		longest = max(longest, lipgloss.Width(line))
	}
	contentWidth := min(longest, max(termWidth-boxOverhead-terminalMargin, 1))

	lines := strings.Split(lipgloss.NewStyle().Width(contentWidth).Render(content), "\n")
	inner := contentWidth + 2

	titleStr := ""
	if title != "" {
		titleStr = " " + title + " "
		inner = max(inner, lipgloss.Width(titleStr)+2*titleDashes)
	}

	borderStyle := lipgloss.NewStyle().Foreground(C.Border)
	titleStyle := lipgloss.NewStyle().Foreground(C.Accent)

	var b strings.Builder
	if titleStr != "" {
		rest := max(inner-lipgloss.Width(titleStr)-titleDashes, 0)
		b.WriteString(borderStyle.Render(S.CornerTL + strings.Repeat(S.Line, titleDashes)))
		b.WriteString(titleStyle.Render(titleStr))
		b.WriteString(borderStyle.Render(strings.Repeat(S.Line, rest) + S.CornerTR))
	} else {
		b.WriteString(borderStyle.Render(S.CornerTL + strings.Repeat(S.Line, inner) + S.CornerTR))
	}
	b.WriteString("\n")

	for _, line := range lines {
		padding := max(inner-lipgloss.Width(line)-2, 0)
		b.WriteString(borderStyle.Render(S.Pipe))
		b.WriteString(" " + line + strings.Repeat(" ", padding) + " ")
		b.WriteString(borderStyle.Render(S.Pipe))
		b.WriteString("\n")
	}
	b.WriteString(borderStyle.Render(S.CornerBL + strings.Repeat(S.Line, inner) + S.CornerBR))
	return b.String()
}

// Took renders an elapsed-time suffix.
func Took(d fmt.Stringer) string {
	return Muted(fmt.Sprintf("(took %v)", d))
}
