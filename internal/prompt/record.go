package prompt

import (
	"errors"
	"fmt"
	"strings"

	"dario.lol/ddns/internal/provision"
	"github.com/charmbracelet/huh"
)

// RecordValues are the raw record inputs as typed by the operator.
type RecordValues struct {
	Hostname string
	ZoneName string
	TTL      string
	Secret   string
}

// Missing names the values that are still empty, in prompt order.
func (v RecordValues) Missing() []string {
	var missing []string
	if v.Hostname == "" {
		missing = append(missing, "hostname")
	}
	if v.ZoneName == "" {
		missing = append(missing, "hosted zone")
	}
	if v.TTL == "" {
		missing = append(missing, "ttl")
	}
	if v.Secret == "" {
		missing = append(missing, "secret")
	}
	return missing
}

// Normalize trims the values given up front and checks the hostname and
// zone with the validators the form uses. TTL and secret are left to
// provision, which owns their errors.
func (v *RecordValues) Normalize() error {
	v.Hostname = strings.TrimSpace(v.Hostname)
	v.ZoneName = strings.TrimSpace(v.ZoneName)
	v.TTL = strings.TrimSpace(v.TTL)

	checks := []struct {
		flag     string
		value    string
		validate func(string) error
	}{
		{"hostname", v.Hostname, ValidateHostname},
		{"hostedzone", v.ZoneName, ValidateZoneName},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		if err := c.validate(c.value); err != nil {
			return fmt.Errorf("%w: --%s %q: %v", provision.ErrInvalidInput, c.flag, c.value, err)
		}
	}
	return nil
}

// CompleteRecord normalizes v and asks for every value still empty. Values
// already set are not shown. Without a terminal the missing values are an
// error.
func CompleteRecord(v *RecordValues) error {
	if err := v.Normalize(); err != nil {
		return err
	}
	missing := v.Missing()
	if len(missing) == 0 {
		return nil
	}
	if !Interactive() {
		return fmt.Errorf("%w: %s must be passed as flags", ErrNotInteractive, strings.Join(missing, ", "))
	}

	var fields []huh.Field
	if v.Hostname == "" {
		fields = append(fields, huh.NewInput().
			Title("Hostname").
			Description("Name the DDNS client will update, e.g. office").
			Value(&v.Hostname).
			Validate(ValidateHostname))
	}
	if v.ZoneName == "" {
		fields = append(fields, huh.NewInput().
			Title("Hosted zone").
			Description("Route 53 hosted zone name, e.g. home.example.com").
			Value(&v.ZoneName).
			Validate(ValidateZoneName))
	}
	if v.TTL == "" {
		fields = append(fields, huh.NewInput().
			Title("TTL").
			Description("Record TTL in seconds").
			Placeholder("300").
			Value(&v.TTL).
			Validate(ValidateTTL))
	}
	if v.Secret == "" {
		fields = append(fields, huh.NewInput().
			Title("Shared secret").
			Description("Password shared between the DDNS client and AWS").
			EchoMode(huh.EchoModePassword).
			Value(&v.Secret).
			Validate(ValidateSecret))
	}

	if err := run(huh.NewForm(huh.NewGroup(fields...))); err != nil {
		return err
	}
	v.Hostname = strings.TrimSpace(v.Hostname)
	v.ZoneName = strings.TrimSpace(v.ZoneName)
	v.TTL = strings.TrimSpace(v.TTL)
	return nil
}

func ValidateHostname(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("hostname cannot be empty")
	}
	if strings.ContainsAny(s, " \t/") {
		return errors.New("hostname cannot contain spaces or slashes")
	}
	return nil
}

func ValidateZoneName(s string) error {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	if s == "" {
		return errors.New("hosted zone cannot be empty")
	}
	for _, label := range strings.Split(s, ".") {
		if label == "" {
			return errors.New("hosted zone has an empty label")
		}
		if len(label) > 63 {
			return fmt.Errorf("label %q is longer than 63 characters", label)
		}
	}
	return nil
}

func ValidateTTL(s string) error {
	if _, err := provision.ParseTTL(s); err != nil {
		return errors.New("TTL must be a non-negative whole number of seconds")
	}
	return nil
}

func ValidateSecret(s string) error {
	if s == "" {
		return errors.New("secret cannot be empty")
	}
	return nil
}
