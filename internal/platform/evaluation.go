package platform

import "context"

// EvaluationTask asks an evaluator to assess an employee.
type EvaluationTask struct {
	ID                   int64  `json:"id"`
	EmployeeID           int64  `json:"employeeId"`
	EmployeeName         string `json:"employeeName,omitempty"`
	DepartmentName       string `json:"departmentName,omitempty"`
	IsLeader             bool   `json:"isLeader,omitempty"`
	EvaluatorID          int64  `json:"evaluatorId,omitempty"`
	EvaluatorName        string `json:"evaluatorName,omitempty"`
	EvaluationType       int    `json:"evaluationType,omitempty"`
	EvaluationTypeText   string `json:"evaluationTypeText,omitempty"`
	EvaluationPeriod     int    `json:"evaluationPeriod,omitempty"`
	EvaluationPeriodText string `json:"evaluationPeriodText,omitempty"`
	PeriodYear           int    `json:"periodYear,omitempty"`
	PeriodQuarter        int    `json:"periodQuarter,omitempty"`
	Status               int    `json:"status"`
	StatusText           string `json:"statusText,omitempty"`
	Deadline             string `json:"deadline,omitempty"`
	EvaluationID         int64  `json:"evaluationId,omitempty"`
}

type EvaluationTaskQuery struct {
	PageRequest
	EmployeeID       int64 `json:"employeeId,omitempty"`
	EvaluatorID      int64 `json:"evaluatorId,omitempty"`
	EvaluationType   int   `json:"evaluationType,omitempty"`
	EvaluationPeriod int   `json:"evaluationPeriod,omitempty"`
	Status           *int  `json:"status,omitempty"`
	PeriodYear       int   `json:"periodYear,omitempty"`
	PeriodQuarter    int   `json:"periodQuarter,omitempty"`
}

// QuarterlyTaskRequest creates the tasks of one quarter.
type QuarterlyTaskRequest struct {
	DepartmentID  int64 `json:"departmentId,omitempty"`
	PeriodYear    int   `json:"periodYear"`
	PeriodQuarter int   `json:"periodQuarter"`
}

// Evaluation is a submitted assessment.
type Evaluation struct {
	ID                 int64    `json:"id"`
	EmployeeID         int64    `json:"employeeId"`
	EmployeeName       string   `json:"employeeName,omitempty"`
	EvaluatorID        int64    `json:"evaluatorId,omitempty"`
	EvaluatorName      string   `json:"evaluatorName,omitempty"`
	CompanyID          int64    `json:"companyId,omitempty"`
	Comment            string   `json:"comment,omitempty"`
	EvaluationType     int      `json:"evaluationType,omitempty"`
	EvaluationTypeText string   `json:"evaluationTypeText,omitempty"`
	PeriodYear         int      `json:"periodYear,omitempty"`
	PeriodQuarter      int      `json:"periodQuarter,omitempty"`
	Tags               []string `json:"tagNames,omitempty"`
	EvaluationDate     string   `json:"evaluationDate,omitempty"`
}

type EvaluationQuery struct {
	PageRequest
	EmployeeID     int64 `json:"employeeId,omitempty"`
	EvaluatorID    int64 `json:"evaluatorId,omitempty"`
	EvaluationType int   `json:"evaluationType,omitempty"`
}

// EvaluationTag is a label attached to evaluations.
type EvaluationTag struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        int    `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

func (c *Client) ListEvaluationTasks(ctx context.Context, q EvaluationTaskQuery) (*Page[EvaluationTask], error) {
	q.PageRequest = q.PageRequest.Normalize()
	return post[*Page[EvaluationTask]](ctx, c, "/evaluation/task/list/page/vo", q)
}

// PendingTaskCount returns the caller's open evaluation tasks.
func (c *Client) PendingTaskCount(ctx context.Context) (int64, error) {
	return get[int64](ctx, c, "/evaluation/task/pending/count", nil)
}

// CreateQuarterlyTasks returns how many tasks were created.
func (c *Client) CreateQuarterlyTasks(ctx context.Context, req QuarterlyTaskRequest) (int, error) {
	return post[int](ctx, c, "/evaluation/task/create/quarterly", req)
}

func (c *Client) ListEvaluations(ctx context.Context, q EvaluationQuery) (*Page[Evaluation], error) {
	q.PageRequest = q.PageRequest.Normalize()
	return post[*Page[Evaluation]](ctx, c, "/evaluation/list/page/vo", q)
}

func (c *Client) GetEvaluation(ctx context.Context, id int64) (*Evaluation, error) {
	return get[*Evaluation](ctx, c, "/evaluation/detail", idQuery("id", id))
}

func (c *Client) ListActiveTags(ctx context.Context) ([]EvaluationTag, error) {
	return get[[]EvaluationTag](ctx, c, "/evaluationTag/list/active", nil)
}
