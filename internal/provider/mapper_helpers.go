package provider

import (
	"encoding/json"
	"net/mail"
	"strings"
	"time"

	"github.com/vjorihoxha/tiktak-vjori/internal/employee"
)

const dateLayout = "2006-01-02"

func getMap(data map[string]any, key string) map[string]any {
	if m, ok := data[key].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func getString(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		// Whole-number ids decoded as float64 keep their integer form.
		b, _ := json.Marshal(v)
		return string(b)
	default:
		return ""
	}
}

// parseDate accepts the calendar form providers send, with an RFC 3339
// fallback. Unparseable input maps to nil rather than an error since every
// date field is optional.
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	return nil
}

// formatPhoneNumber strips everything except digits and caps the result at
// the 20 character column limit.
func formatPhoneNumber(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if len(cleaned) > 20 {
		cleaned = cleaned[:20]
	}
	return cleaned
}

func validEmail(raw string) bool {
	if raw == "" {
		return false
	}
	_, err := mail.ParseAddress(raw)
	return err == nil
}

func snapshotRawData(data map[string]any) json.RawMessage {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return raw
}

// trackTikBase builds the fields every mapper sends identically: the three
// required fields, the optional ones when present, and the trace metadata.
func trackTikBase(p string, empl *employee.Employee) map[string]any {
	data := map[string]any{
		"firstName": empl.FirstName,
		"lastName":  empl.LastName,
		"email":     empl.Email,
	}

	if empl.PhoneNumber != "" {
		data["primaryPhone"] = empl.PhoneNumber
	}
	if empl.HireDate != nil {
		data["startDate"] = empl.HireDate.Format(dateLayout)
	}
	if empl.DateOfBirth != nil {
		data["birthdate"] = empl.DateOfBirth.Format(dateLayout)
	}
	if empl.Department != "" {
		data["department"] = empl.Department
	}
	if empl.Position != "" {
		data["jobTitle"] = empl.Position
	}

	data["customFields"] = map[string]any{
		"source_provider": p,
		"external_id":     empl.ExternalID,
	}

	return data
}
