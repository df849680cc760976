package employee

import "time"

type EmployeeResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	HireDate    string `json:"hire_date,omitempty"`
	Department  string `json:"department,omitempty"`
	Position    string `json:"position,omitempty"`
	Provider    string `json:"provider"`
	ExternalID  string `json:"external_id"`
	TrackTikID  *int64 `json:"track_tik_id,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

const dateLayout = "2006-01-02"

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:          empl.ID.String(),
		FirstName:   empl.FirstName,
		LastName:    empl.LastName,
		Email:       empl.Email,
		PhoneNumber: empl.PhoneNumber,
		Department:  empl.Department,
		Position:    empl.Position,
		Provider:    empl.Provider,
		ExternalID:  empl.ExternalID,
		TrackTikID:  empl.TrackTikID,
		CreatedAt:   empl.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   empl.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if empl.DateOfBirth != nil {
		resp.DateOfBirth = empl.DateOfBirth.Format(dateLayout)
	}
	if empl.HireDate != nil {
		resp.HireDate = empl.HireDate.Format(dateLayout)
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
