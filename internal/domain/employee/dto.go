package employee

type EmployeeResponse struct {
	ID       string  `json:"id"`
	UserID   *string `json:"user_id,omitempty"`
	FullName string  `json:"full_name"`
	Position *string `json:"position,omitempty"`
	City     *string `json:"city,omitempty"`
}

type EmployeeListResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	Employees  []EmployeeResponse `json:"employees"`
}
