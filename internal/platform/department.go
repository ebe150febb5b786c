package platform

import "context"

// Department belongs to one company.
type Department struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CompanyID   int64  `json:"companyId,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	LeaderID    int64  `json:"leaderId,omitempty"`
	LeaderName  string `json:"leaderName,omitempty"`
}

type DepartmentQuery struct {
	PageRequest
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	CompanyID int64  `json:"companyId,omitempty"`
	LeaderID  int64  `json:"leaderId,omitempty"`
}

type DepartmentAddRequest struct {
	Name      string `json:"name"`
	CompanyID int64  `json:"companyId,omitempty"`
	LeaderID  int64  `json:"leaderId,omitempty"`
}

type DepartmentUpdateRequest struct {
	ID int64 `json:"id"`
	DepartmentAddRequest
}

// SupervisorRequest assigns a department leader.
type SupervisorRequest struct {
	DepartmentID int64 `json:"departmentId"`
	EmployeeID   int64 `json:"employeeId"`
}

func (c *Client) AddDepartment(ctx context.Context, req DepartmentAddRequest) (int64, error) {
	return post[int64](ctx, c, "/department/add", req)
}

func (c *Client) AddSupervisor(ctx context.Context, req SupervisorRequest) (bool, error) {
	return post[bool](ctx, c, "/department/addSupervisor", req)
}

func (c *Client) ListDepartments(ctx context.Context, q DepartmentQuery) (*Page[Department], error) {
	q.PageRequest = q.PageRequest.Normalize()
	return post[*Page[Department]](ctx, c, "/department/list/page/vo", q)
}

func (c *Client) ToggleDepartment(ctx context.Context, id int64) (bool, error) {
	return post[bool](ctx, c, "/department/toggle", IDRequest{ID: id})
}

func (c *Client) UpdateDepartment(ctx context.Context, req DepartmentUpdateRequest) (bool, error) {
	return put[bool](ctx, c, "/department/update", req)
}
