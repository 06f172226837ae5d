package prompt

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

type Credentials struct {
	AccessKeyID string
	SecretKey   string
	Region      string
}

func RunLoginPrompt() (Credentials, error) {
	if !Interactive() {
		return Credentials{}, ErrNotInteractive
	}

	var creds Credentials
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Access key ID").
				Description("Create keys in: IAM → Users → Security credentials").
				Placeholder("AKIA...").
				Value(&creds.AccessKeyID).
				Validate(ValidateAccessKeyID),
			huh.NewInput().
				Title("Secret access key").
				EchoMode(huh.EchoModePassword).
				Value(&creds.SecretKey).
				Validate(func(s string) error {
					if len(s) == 0 {
						return errors.New("secret access key cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Default region").
				Description("Optional; leave empty to use your AWS config").
				Placeholder("us-east-1").
				Value(&creds.Region),
		),
	)
	if err := run(form); err != nil {
		return Credentials{}, err
	}
	creds.AccessKeyID = strings.TrimSpace(creds.AccessKeyID)
	creds.Region = strings.TrimSpace(creds.Region)
	return creds, nil
}

// ValidateAccessKeyID checks the shape of an IAM access key id.
func ValidateAccessKeyID(s string) error {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return errors.New("access key ID cannot be empty")
	}
	if len(s) < 16 || len(s) > 128 {
		return errors.New("access key ID must be between 16 and 128 characters")
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return errors.New("access key ID may only contain upper case letters and digits")
		}
	}
	return nil
}
