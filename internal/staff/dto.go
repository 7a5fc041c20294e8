package staff

// StaffResponse is the roster entry shape served to clients.
type StaffResponse struct {
	ID          int64  `json:"id"`
	StaffID     string `json:"staff_id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Designation string `json:"designation"`
}

type RosterResponse struct {
	Staff  []StaffResponse `json:"staff"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

func (s *Staff) ToResponse() StaffResponse {
	return StaffResponse{
		ID:          s.ID,
		StaffID:     s.StaffID,
		FullName:    s.FullName,
		Email:       s.Email,
		Designation: s.Designation,
	}
}
