package platform

import "context"

// Company is a member organisation.
type Company struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	ContactPersonID   int64    `json:"contactPersonId,omitempty"`
	ContactPersonName string   `json:"contactPersonName,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	Email             string   `json:"email,omitempty"`
	IndustryCategory  string   `json:"industryCategory,omitempty"`
	Industries        []string `json:"industries,omitempty"`
	CreateTime        string   `json:"createTime,omitempty"`
}

// CompanyQuery filters the company list.
type CompanyQuery struct {
	PageRequest
	ID                int64  `json:"id,omitempty"`
	Name              string `json:"name,omitempty"`
	ContactPersonName string `json:"contactPersonName,omitempty"`
	Industry          string `json:"industry,omitempty"`
}

// CompanyAddRequest creates a company.
type CompanyAddRequest struct {
	Name             string   `json:"name"`
	ContactPersonID  int64    `json:"contactPersonId,omitempty"`
	Phone            string   `json:"phone,omitempty"`
	Email            string   `json:"email,omitempty"`
	IndustryCategory string   `json:"industryCategory,omitempty"`
	Industries       []string `json:"industries,omitempty"`
}

// CompanyUpdateRequest edits a company.
type CompanyUpdateRequest struct {
	ID int64 `json:"id"`
	CompanyAddRequest
}

// Registration status values.
const (
	RegistrationPending  = 0
	RegistrationApproved = 1
	RegistrationRejected = 2
)

// CompanyRegistration is a request to join the platform.
type CompanyRegistration struct {
	ID               int64    `json:"id"`
	CompanyName      string   `json:"companyName"`
	Address          string   `json:"address,omitempty"`
	CompanyEmail     string   `json:"companyEmail,omitempty"`
	AdminName        string   `json:"adminName,omitempty"`
	AdminPhone       string   `json:"adminPhone,omitempty"`
	AdminEmail       string   `json:"adminEmail,omitempty"`
	AdminIDNumber    string   `json:"adminIdNumber,omitempty"`
	AdminUsername    string   `json:"adminUsername,omitempty"`
	IndustryCategory string   `json:"industryCategory,omitempty"`
	Industries       []string `json:"industries,omitempty"`
	ProofImages      []string `json:"proofImages,omitempty"`
	Status           int      `json:"status"`
	StatusText       string   `json:"statusText,omitempty"`
	RejectReason     string   `json:"rejectReason,omitempty"`
	CreateTime       string   `json:"createTime,omitempty"`
}

// RegistrationQuery filters registration requests.
type RegistrationQuery struct {
	PageRequest
	CompanyName string `json:"companyName,omitempty"`
	Status      *int   `json:"status,omitempty"`
}

// RegistrationApplyRequest submits a registration.
type RegistrationApplyRequest struct {
	CompanyName      string   `json:"companyName"`
	Address          string   `json:"address,omitempty"`
	CompanyEmail     string   `json:"companyEmail,omitempty"`
	AdminName        string   `json:"adminName"`
	AdminPhone       string   `json:"adminPhone,omitempty"`
	AdminEmail       string   `json:"adminEmail,omitempty"`
	AdminIDNumber    string   `json:"adminIdNumber,omitempty"`
	AdminUsername    string   `json:"adminUsername"`
	AdminPassword    string   `json:"adminPassword,omitempty"`
	IndustryCategory string   `json:"industryCategory,omitempty"`
	Industries       []string `json:"industries,omitempty"`
	ProofImages      []string `json:"proofImages,omitempty"`
}

// RegistrationApproveRequest approves or rejects a registration.
type RegistrationApproveRequest struct {
	ID           int64  `json:"id"`
	Approved     bool   `json:"approved"`
	RejectReason string `json:"rejectReason,omitempty"`
}

func (c *Client) AddCompany(ctx context.Context, req CompanyAddRequest) (int64, error) {
	return post[int64](ctx, c, "/company/add", req)
}

func (c *Client) ListCompanies(ctx context.Context, q CompanyQuery) (*Page[Company], error) {
	q.PageRequest = q.PageRequest.Normalize()
	return post[*Page[Company]](ctx, c, "/company/list/page/vo", q)
}

func (c *Client) GetCompany(ctx context.Context, id int64) (*Company, error) {
	return get[*Company](ctx, c, "/company/get/vo", idQuery("id", id))
}

func (c *Client) ToggleCompany(ctx context.Context, id int64) (bool, error) {
	return post[bool](ctx, c, "/company/toggle", IDRequest{ID: id})
}

func (c *Client) UpdateCompany(ctx context.Context, req CompanyUpdateRequest) (bool, error) {
	return put[bool](ctx, c, "/company/update", req)
}

// ApplyRegistration is callable without a session.
func (c *Client) ApplyRegistration(ctx context.Context, req RegistrationApplyRequest) (int64, error) {
	return post[int64](ctx, c, "/company/registration/apply", req)
}

func (c *Client) ListRegistrations(ctx context.Context, q RegistrationQuery) (*Page[CompanyRegistration], error) {
	q.PageRequest = q.PageRequest.Normalize()
	return post[*Page[CompanyRegistration]](ctx, c, "/company/registration/list/page", q)
}

func (c *Client) ApproveRegistration(ctx context.Context, req RegistrationApproveRequest) (bool, error) {
	return put[bool](ctx, c, "/company/registration/approve", req)
}

// UploadRegistrationProof uploads proof images and returns their URLs.
func (c *Client) UploadRegistrationProof(ctx context.Context, files []UploadFile) ([]string, error) {
	return c.upload(ctx, "/company/registration/upload/proof", files)
}
