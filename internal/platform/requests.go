package platform

import "context"

// Access request status values.
const (
	AccessPending  = 0
	AccessApproved = 1
	AccessRejected = 2
)

// AccessRequest asks another company for contact or profile access.
type AccessRequest struct {
	ID                 int64  `json:"id"`
	RequestCompanyID   int64  `json:"requestCompanyId,omitempty"`
	RequestCompanyName string `json:"requestCompanyName,omitempty"`
	EmployeeID         int64  `json:"employeeId"`
	EmployeeName       string `json:"employeeName,omitempty"`
	EmployeeProfileID  int64  `json:"employeeProfileId,omitempty"`
	RequestType        int    `json:"requestType,omitempty"`
	RequestTypeText    string `json:"requestTypeText,omitempty"`
	RequestReason      string `json:"requestReason,omitempty"`
	Status             int    `json:"status"`
	StatusText         string `json:"statusText,omitempty"`
	RequestTime        string `json:"requestTime,omitempty"`
	ResponseTime       string `json:"responseTime,omitempty"`
	ExpireTime         string `json:"expireTime,omitempty"`
}

type AccessRequestQuery struct {
	PageRequest
	EmployeeID int64 `json:"employeeId,omitempty"`
	Status     *int  `json:"status,omitempty"`
}

type AccessRequestAdd struct {
	EmployeeID        int64  `json:"employeeId"`
	EmployeeProfileID int64  `json:"employeeProfileId,omitempty"`
	RequestType       int    `json:"requestType,omitempty"`
	RequestReason     string `json:"requestReason,omitempty"`
}

type AccessRequestDecision struct {
	ID     int64 `json:"id"`
	Status int   `json:"status"`
}

// RewardPunishment is a reward or penalty record of an employee.
type RewardPunishment struct {
	ID           int64   `json:"id"`
	EmployeeID   int64   `json:"employeeId"`
	EmployeeName string  `json:"employeeName,omitempty"`
	CompanyID    int64   `json:"companyId,omitempty"`
	Type         int     `json:"type"`
	Description  string  `json:"description,omitempty"`
	Amount       float64 `json:"amount,omitempty"`
	Date         string  `json:"date,omitempty"`
	OperatorName string  `json:"operatorName,omitempty"`
}

type RewardPunishmentQuery struct {
	PageRequest
	EmployeeID int64 `json:"employeeId,omitempty"`
	Type       *int  `json:"type,omitempty"`
}

func (c *Client) CreateContactRequest(ctx context.Context, req AccessRequestAdd) (int64, error) {
	return post[int64](ctx, c, "/contactAccessRequest/add", req)
}

func (c *Client) DecideContactRequest(ctx context.Context, req AccessRequestDecision) (bool, error) {
	return put[bool](ctx, c, "/contactAccessRequest/approve", req)
}

func (c *Client) ListContactRequests(ctx context.Context, q AccessRequestQuery) (*Page[AccessRequest], error) {
	q.PageRequest = q.PageRequest.Normalize()
	return post[*Page[AccessRequest]](ctx, c, "/contactAccessRequest/list/page/vo", q)
}

func (c *Client) CreateProfileRequest(ctx context.Context, req AccessRequestAdd) (int64, error) {
	return post[int64](ctx, c, "/profileAccessRequest/add", req)
}

func (c *Client) DecideProfileRequest(ctx context.Context, req AccessRequestDecision) (bool, error) {
	return put[bool](ctx, c, "/profileAccessRequest/approve", req)
}

func (c *Client) ListProfileRequests(ctx context.Context, q AccessRequestQuery) (*Page[AccessRequest], error) {
	q.PageRequest = q.PageRequest.Normalize()
	return post[*Page[AccessRequest]](ctx, c, "/profileAccessRequest/list/page/vo", q)
}

func (c *Client) ListRewardPunishments(ctx context.Context, q RewardPunishmentQuery) (*Page[RewardPunishment], error) {
	q.PageRequest = q.PageRequest.Normalize()
	return post[*Page[RewardPunishment]](ctx, c, "/rewardPunishment/list/page/vo", q)
}

func (c *Client) DeleteRewardPunishment(ctx context.Context, id int64) (bool, error) {
	return post[bool](ctx, c, "/rewardPunishment/delete", IDRequest{ID: id})
}
