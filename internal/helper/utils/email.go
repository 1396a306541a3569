package utils

import (
	"errors"
	"net/mail"
	"strings"
)

func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", errors.New("invalid email format")
	}
	if _, err := ExtractEmailDomain(email); err != nil {
		return "", err
	}
	return email, nil
}

func ExtractEmailDomain(email string) (string, error) {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || !strings.Contains(parts[1], ".") {
		return "", errors.New("invalid email format")
	}
	return parts[1], nil
}
