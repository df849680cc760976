package provider

import (
	"github.com/vjorihoxha/tiktak-vjori/internal/employee"

	"github.com/google/uuid"
)

// Provider1Mapper handles the provider1 feed.
//
// Expected shape:
//
//	{
//	  "id": "12345",
//	  "personal_info": {
//	    "first_name": "John",
//	    "last_name": "Doe",
//	    "email_address": "john.doe@example.com",
//	    "phone": "+1-555-123-4567",
//	    "birth_date": "1985-06-15"
//	  },
//	  "employment": {
//	    "hire_date": "2023-01-15",
//	    "department_name": "Security",
//	    "job_title": "Security Guard"
//	  }
//	}
type Provider1Mapper struct{}

func NewProvider1Mapper() *Provider1Mapper {
	return &Provider1Mapper{}
}

func (m *Provider1Mapper) Provider() string {
	return "provider1"
}

func (m *Provider1Mapper) Validate(data map[string]any) bool {
	if _, ok := data["id"]; !ok {
		return false
	}
	personalInfo, ok := data["personal_info"].(map[string]any)
	if !ok {
		return false
	}

	for _, field := range []string{"first_name", "last_name", "email_address"} {
		if getString(personalInfo, field) == "" {
			return false
		}
	}

	return validEmail(getString(personalInfo, "email_address"))
}

func (m *Provider1Mapper) ExternalID(data map[string]any) string {
	return getString(data, "id")
}

func (m *Provider1Mapper) ToEmployee(data map[string]any) *employee.Employee {
	personalInfo := getMap(data, "personal_info")
	employment := getMap(data, "employment")

	return &employee.Employee{
		ID:          uuid.New(),
		Provider:    m.Provider(),
		ExternalID:  m.ExternalID(data),
		FirstName:   getString(personalInfo, "first_name"),
		LastName:    getString(personalInfo, "last_name"),
		Email:       getString(personalInfo, "email_address"),
		PhoneNumber: formatPhoneNumber(getString(personalInfo, "phone")),
		DateOfBirth: parseDate(getString(personalInfo, "birth_date")),
		HireDate:    parseDate(getString(employment, "hire_date")),
		Department:  getString(employment, "department_name"),
		Position:    getString(employment, "job_title"),
		RawData:     snapshotRawData(data),
	}
}

func (m *Provider1Mapper) ToTrackTik(empl *employee.Employee) map[string]any {
	return trackTikBase(m.Provider(), empl)
}
