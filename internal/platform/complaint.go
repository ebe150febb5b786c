package platform

import "context"

// Complaint status values.
const (
	ComplaintPending    = 0
	ComplaintProcessing = 1
	ComplaintResolved   = 2
	ComplaintRejected   = 3
)

// Complaint disputes an evaluation.
type Complaint struct {
	ID              int64    `json:"id"`
	ComplainantID   int64    `json:"complainantId,omitempty"`
	ComplainantName string   `json:"complainantName,omitempty"`
	EvaluationID    int64    `json:"evaluationId,omitempty"`
	CompanyID       int64    `json:"companyId,omitempty"`
	CompanyName     string   `json:"companyName,omitempty"`
	Type            int      `json:"type,omitempty"`
	TypeText        string   `json:"typeText,omitempty"`
	Title           string   `json:"title"`
	Content         string   `json:"content,omitempty"`
	EvidenceImages  []string `json:"evidenceImages,omitempty"`
	Status          int      `json:"status"`
	StatusText      string   `json:"statusText,omitempty"`
	HandlerID       int64    `json:"handlerId,omitempty"`
	HandlerName     string   `json:"handlerName,omitempty"`
	HandleResult    string   `json:"handleResult,omitempty"`
	HandleTime      string   `json:"handleTime,omitempty"`
	CreateTime      string   `json:"createTime,omitempty"`
}

type ComplaintQuery struct {
	PageRequest
	ComplainantID int64 `json:"complainantId,omitempty"`
	EvaluationID  int64 `json:"evaluationId,omitempty"`
	CompanyID     int64 `json:"companyId,omitempty"`
	Type          *int  `json:"type,omitempty"`
	Status        *int  `json:"status,omitempty"`
}

type ComplaintAddRequest struct {
	EvaluationID   int64    `json:"evaluationId,omitempty"`
	Type           int      `json:"type"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	EvidenceImages []string `json:"evidenceImages,omitempty"`
}

type ComplaintHandleRequest struct {
	ID           int64  `json:"id"`
	Status       int    `json:"status"`
	HandleResult string `json:"handleResult,omitempty"`
}

func (c *Client) AddComplaint(ctx context.Context, req ComplaintAddRequest) (int64, error) {
	return post[int64](ctx, c, "/complaint/add", req)
}

func (c *Client) ListComplaints(ctx context.Context, q ComplaintQuery) (*Page[Complaint], error) {
	q.PageRequest = q.PageRequest.Normalize()
	return post[*Page[Complaint]](ctx, c, "/complaint/list/page/vo", q)
}

func (c *Client) GetComplaint(ctx context.Context, id int64) (*Complaint, error) {
	return get[*Complaint](ctx, c, "/complaint/detail", idQuery("id", id))
}

func (c *Client) HandleComplaint(ctx context.Context, req ComplaintHandleRequest) (bool, error) {
	return post[bool](ctx, c, "/complaint/handle", req)
}

// UploadEvidence uploads evidence images and returns their URLs.
func (c *Client) UploadEvidence(ctx context.Context, files []UploadFile) ([]string, error) {
	return c.upload(ctx, "/complaint/upload/evidence", files)
}
