package login

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// MinPasswordLength counts characters, not bytes, so å, ä and ö weigh one each.
const MinPasswordLength = 12

var (
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordTooWeak  = errors.New("password must include upper, lower, digit and symbol")
)

// ValidatePasswordPolicy checks passwords for portal accounts before they are
// hashed.
func ValidatePasswordPolicy(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	var classes struct{ upper, lower, digit, symbol bool }
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			classes.upper = true
		case unicode.IsLower(r):
			classes.lower = true
		case unicode.IsDigit(r):
			classes.digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			classes.symbol = true
		}
	}
	if !classes.upper || !classes.lower || !classes.digit || !classes.symbol {
		return ErrPasswordTooWeak
	}
	return nil
}
