package helpers

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyUser   contextKey = "userObject"
	ContextKeyRegion contextKey = "region"
	CSRFTokenKey     contextKey = "csrfToken"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
	"CAD": "C$",
	"AUD": "A$",
}

// FormatPrice renders a price with the symbol of its currency, e.g.
// "£8.00". Unknown currencies fall back to an ISO-code prefix.
func FormatPrice(amount decimal.Decimal, currency string) string {
	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = strings.ToUpper(currency) + " "
	}
	ac := accounting.Accounting{Symbol: symbol, Precision: 2}
	return ac.FormatMoneyDecimal(amount)
}

func GenerateSlug(s string) string {
	return slug.Make(s)
}

// EncodeFeatures serializes a product's feature bullet list for the
// text column; DecodeFeatures is its inverse and tolerates legacy
// newline-separated values.
func EncodeFeatures(features []string) string {
	if len(features) == 0 {
		return ""
	}
	b, err := json.Marshal(features)
	if err != nil {
		log.Printf("EncodeFeatures: %v", err)
		return ""
	}
	return string(b)
}

func DecodeFeatures(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var features []string
	if err := json.Unmarshal([]byte(raw), &features); err == nil {
		return features
	}
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", err.Field())
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address.", err.Field())
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s must be a number.", err.Field())
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s characters.", err.Field(), err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s characters.", err.Field(), err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of: %s.", err.Field(), err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s failed %s validation.", err.Field(), err.Tag())
		}
	}
	return errorMessages
}

func PasswordCompare(hashPass string, password []byte) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashPass), password)
	if err != nil {
		log.Printf("PasswordCompare: password does not match or error: %v", err)
		return false
	}
	return true
}

func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return ""
	}
	return string(bytes)
}
