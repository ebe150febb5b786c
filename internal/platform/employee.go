package platform

import "context"

// Employee is an employee record.
type Employee struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Gender         string `json:"gender,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	IDCardNumber   string `json:"idCardNumber,omitempty"`
	CompanyID      int64  `json:"companyId,omitempty"`
	CompanyName    string `json:"companyName,omitempty"`
	DepartmentID   int64  `json:"departmentId,omitempty"`
	DepartmentName string `json:"departmentName,omitempty"`
	PhotoURL       string `json:"photoUrl,omitempty"`
}

type EmployeeQuery struct {
	PageRequest
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	IDCardNumber string `json:"idCardNumber,omitempty"`
	CompanyID    int64  `json:"companyId,omitempty"`
	DepartmentID int64  `json:"departmentId,omitempty"`
	Status       *bool  `json:"status,omitempty"`
}

type EmployeeCreateRequest struct {
	Name         string `json:"name"`
	Gender       string `json:"gender,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	IDCardNumber string `json:"idCardNumber"`
	DepartmentID int64  `json:"departmentId,omitempty"`
}

// FireRequest starts or confirms a resignation.
type FireRequest struct {
	EmployeeID int64  `json:"employeeId"`
	Reason     string `json:"reason,omitempty"`
}

// EmployeeProfile is one employment period of an employee.
type EmployeeProfile struct {
	ID                 int64   `json:"id"`
	EmployeeID         int64   `json:"employeeId"`
	EmployeeName       string  `json:"employeeName,omitempty"`
	CompanyID          int64   `json:"companyId,omitempty"`
	CompanyName        string  `json:"companyName,omitempty"`
	Occupation         string  `json:"occupation,omitempty"`
	StartDate          string  `json:"startDate,omitempty"`
	EndDate            string  `json:"endDate,omitempty"`
	AttendanceRate     float64 `json:"attendanceRate,omitempty"`
	HasMajorIncident   bool    `json:"hasMajorIncident,omitempty"`
	ReasonForLeaving   string  `json:"reasonForLeaving,omitempty"`
	PerformanceSummary string  `json:"performanceSummary,omitempty"`
	Visibility         int     `json:"visibility,omitempty"`
}

type EmployeeProfileQuery struct {
	PageRequest
	EmployeeID int64 `json:"employeeId,omitempty"`
	CompanyID  int64 `json:"companyId,omitempty"`
}

func (c *Client) CreateEmployee(ctx context.Context, req EmployeeCreateRequest) (int64, error) {
	return post[int64](ctx, c, "/employee/create", req)
}

func (c *Client) FireEmployee(ctx context.Context, req FireRequest) (bool, error) {
	return post[bool](ctx, c, "/employee/fire", req)
}

func (c *Client) ConfirmFireEmployee(ctx context.Context, req FireRequest) (bool, error) {
	return post[bool](ctx, c, "/employee/fire/confirm", req)
}

func (c *Client) ListEmployees(ctx context.Context, q EmployeeQuery) (*Page[Employee], error) {
	q.PageRequest = q.PageRequest.Normalize()
	return post[*Page[Employee]](ctx, c, "/employee/list/page/vo", q)
}

// CountEmployees returns the number of employees visible to the caller.
func (c *Client) CountEmployees(ctx context.Context) (int64, error) {
	return get[int64](ctx, c, "/employee/count", nil)
}

// MyEmployee returns the employee record of the logged-in user. Users not yet
// assigned to a company get a silent business error.
func (c *Client) MyEmployee(ctx context.Context) (*Employee, error) {
	return get[*Employee](ctx, c, "/employee/get/me/vo", nil)
}

func (c *Client) DepartmentColleagues(ctx context.Context) ([]Employee, error) {
	return get[[]Employee](ctx, c, "/employee/colleagues/department", nil)
}

func (c *Client) ListEmployeeProfiles(ctx context.Context, q EmployeeProfileQuery) (*Page[EmployeeProfile], error) {
	q.PageRequest = q.PageRequest.Normalize()
	return post[*Page[EmployeeProfile]](ctx, c, "/employeeProfile/list/page/vo", q)
}

func (c *Client) ListMyEmployeeProfiles(ctx context.Context, q EmployeeProfileQuery) (*Page[EmployeeProfile], error) {
	q.PageRequest = q.PageRequest.Normalize()
	return post[*Page[EmployeeProfile]](ctx, c, "/employeeProfile/list/page/vo/me", q)
}

func (c *Client) DeleteEmployeeProfile(ctx context.Context, id int64) (bool, error) {
	return post[bool](ctx, c, "/employeeProfile/delete", IDRequest{ID: id})
}
