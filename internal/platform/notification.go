package platform

import "context"

// Notification status values.
const (
	NotificationUnread = 0
	NotificationRead   = 1
)

// NotificationItem is a row of the notification list.
type NotificationItem struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Status     int    `json:"status"`
	StatusText string `json:"statusText,omitempty"`
	CreateTime string `json:"createTime,omitempty"`
}

// Notification is the full notification.
type Notification struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId,omitempty"`
	Type       int    `json:"type,omitempty"`
	TypeText   string `json:"typeText,omitempty"`
	Title      string `json:"title"`
	Content    string `json:"content,omitempty"`
	RelatedID  int64  `json:"relatedId,omitempty"`
	Status     int    `json:"status"`
	StatusText string `json:"statusText,omitempty"`
	Deadline   string `json:"deadline,omitempty"`
	CreateTime string `json:"createTime,omitempty"`
}

type NotificationQuery struct {
	PageRequest
	Type   *int `json:"type,omitempty"`
	Status *int `json:"status,omitempty"`
}

type NotificationStatusRequest struct {
	ID     int64 `json:"id"`
	Status int   `json:"status"`
}

func (c *Client) ListNotifications(ctx context.Context, q NotificationQuery) (*Page[NotificationItem], error) {
	q.PageRequest = q.PageRequest.Normalize()
	return post[*Page[NotificationItem]](ctx, c, "/notification/list/page/vo", q)
}

func (c *Client) GetNotification(ctx context.Context, id int64) (*Notification, error) {
	return get[*Notification](ctx, c, "/notification/get/vo", idQuery("id", id))
}

func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	return get[int64](ctx, c, "/notification/unread/count", nil)
}

// MarkRead marks one notification as read.
func (c *Client) MarkRead(ctx context.Context, id int64) (bool, error) {
	return put[bool](ctx, c, "/notification/update/status", NotificationStatusRequest{ID: id, Status: NotificationRead})
}

func (c *Client) MarkAllRead(ctx context.Context) (bool, error) {
	return put[bool](ctx, c, "/notification/read/all", nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id int64) (bool, error) {
	return post[bool](ctx, c, "/notification/delete", IDRequest{ID: id})
}

func (c *Client) DeleteReadNotifications(ctx context.Context) (bool, error) {
	return post[bool](ctx, c, "/notification/delete/read", nil)
}
