package application

import (
	"fmt"
	"strings"

	"cdrlink/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "personID" -> "person ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"phone":    "phone number",
		"phoneA":   "first phone number",
		"phoneB":   "second phone number",
		"personID": "person ID",
		"pairKey":  "pair key",
		"path":     "file path",
	}
	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidatePhone normalizes a phone number field.
// Returns a ValidationError if the value is empty or not a phone number.
func ValidatePhone(fieldName, raw string) (domain.PhoneID, error) {
	if err := ValidateRequired(fieldName, raw); err != nil {
		return "", err
	}
	id, err := domain.NormalizePhone(raw)
	if err != nil {
		return "", &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("invalid %s: %s", formatFieldName(fieldName), raw),
		}
	}
	return id, nil
}

// ValidatePair normalizes two phone fields into a canonical pair key.
// Returns a ValidationError if either is invalid or both are the same phone.
func ValidatePair(rawA, rawB string) (domain.PairKey, error) {
	a, err := ValidatePhone("phoneA", rawA)
	if err != nil {
		return domain.PairKey{}, err
	}
	b, err := ValidatePhone("phoneB", rawB)
	if err != nil {
		return domain.PairKey{}, err
	}
	pair, err := domain.NewPairKey(a, b)
	if err != nil {
		return domain.PairKey{}, &ValidationError{
			Field:   "phoneB",
			Message: fmt.Sprintf("a phone cannot be paired with itself: %s", a),
		}
	}
	return pair, nil
}
