package provider

import (
	"github.com/vjorihoxha/tiktak-vjori/internal/employee"

	"github.com/google/uuid"
)

// Provider2Mapper handles the provider2 feed.
//
// Expected shape:
//
//	{
//	  "employee_id": "EMP-001",
//	  "name": {
//	    "given": "Jane",
//	    "family": "Smith"
//	  },
//	  "contact": {
//	    "email": "jane.smith@company.com",
//	    "mobile": "555.987.6543"
//	  },
//	  "profile": {
//	    "dob": "1990-03-22",
//	    "start_date": "2022-08-10",
//	    "division": "Operations",
//	    "role": "Operations Manager"
//	  }
//	}
type Provider2Mapper struct{}

func NewProvider2Mapper() *Provider2Mapper {
	return &Provider2Mapper{}
}

func (m *Provider2Mapper) Provider() string {
	return "provider2"
}

func (m *Provider2Mapper) Validate(data map[string]any) bool {
	if _, ok := data["employee_id"]; !ok {
		return false
	}
	name, ok := data["name"].(map[string]any)
	if !ok {
		return false
	}
	contact, ok := data["contact"].(map[string]any)
	if !ok {
		return false
	}

	if getString(name, "given") == "" || getString(name, "family") == "" {
		return false
	}

	return validEmail(getString(contact, "email"))
}

func (m *Provider2Mapper) ExternalID(data map[string]any) string {
	return getString(data, "employee_id")
}

func (m *Provider2Mapper) ToEmployee(data map[string]any) *employee.Employee {
	name := getMap(data, "name")
	contact := getMap(data, "contact")
	profile := getMap(data, "profile")

	return &employee.Employee{
		ID:          uuid.New(),
		Provider:    m.Provider(),
		ExternalID:  m.ExternalID(data),
		FirstName:   getString(name, "given"),
		LastName:    getString(name, "family"),
		Email:       getString(contact, "email"),
		PhoneNumber: formatPhoneNumber(getString(contact, "mobile")),
		DateOfBirth: parseDate(getString(profile, "dob")),
		HireDate:    parseDate(getString(profile, "start_date")),
		Department:  getString(profile, "division"),
		Position:    getString(profile, "role"),
		RawData:     snapshotRawData(data),
	}
}

func (m *Provider2Mapper) ToTrackTik(empl *employee.Employee) map[string]any {
	return trackTikBase(m.Provider(), empl)
}
