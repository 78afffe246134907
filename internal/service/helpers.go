package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
)

var errInvalidPhone = errors.New("invalid phone number")

// requireID rejects path identifiers that are not store-generated UUIDs.
func requireID(id, label string) error {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return appErrors.Validation(err, "invalid "+label+" id")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizePhone parses raw in the default region and returns the E.164 form.
func normalizePhone(raw, region string) (string, error) {
	num, err := phonenumbers.Parse(strings.TrimSpace(raw), region)
	if err != nil {
		return "", err
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", errInvalidPhone
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func anyBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
