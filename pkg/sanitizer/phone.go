package sanitizer

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var (
	supportedRegions = []string{
		"US",
		"BR",
		"GB",
	}

	reValidPhone = regexp.MustCompile(`^(?:|\+[1-9]\d{7,14})$`)
)

// SanitizePhone normalizes a manager phone number to E.164. Inputs that do not
// look like a phone number at all pass through unchanged so field validation
// can report them; parseable numbers that fit no supported region become "".
func SanitizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" || !reValidPhone.MatchString(phone) {
		return phone
	}

	for _, region := range supportedRegions {
		parsedNumber, err := phonenumbers.Parse(phone, region)
		if err == nil {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return ""
}
