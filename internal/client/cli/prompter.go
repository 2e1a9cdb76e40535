package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/invoicextractor/internal/client/models"
	"github.com/dmitrijs2005/invoicextractor/internal/shared"
)

// requiredText asks until a non-empty answer is given.
func (a *App) requiredText(prompt, invalid string) (string, error) {
	for {
		s, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
		fmt.Fprintln(a.out, invalid)
	}
}

// Credentials implements services.Prompter.
func (a *App) Credentials(ctx context.Context) (string, []byte, error) {
	username, err := a.requiredText("Type your username:", "Invalid username")
	if err != nil {
		return "", nil, err
	}

	for {
		password, err := getPassword("Type your password:", a.out)
		if err != nil {
			return "", nil, err
		}
		if len(password) > 0 {
			return username, password, nil
		}
		shared.WipeByteArray(password)
		fmt.Fprintln(a.out, "Invalid password")
	}
}

// VerificationCode implements services.Prompter.
func (a *App) VerificationCode(ctx context.Context, token *models.AuthenticationToken) (string, error) {
	prompt := "Type sms code:"
	if token != nil && token.VerificationCodeTarget != "" {
		prompt = fmt.Sprintf("Type the code sent to %s:", token.VerificationCodeTarget)
	}
	return a.requiredText(prompt, "Invalid SMS code")
}
