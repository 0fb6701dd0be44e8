package models

type NotificationKind string

const (
	NotificationHrApproved               NotificationKind = "hr-approved"
	NotificationHrDisapproved            NotificationKind = "hr-disapproved"
	NotificationApplicationSubmitted     NotificationKind = "application-submitted"
	NotificationApplicationStatusChanged NotificationKind = "application-status-changed"
	NotificationJobClosed                NotificationKind = "job-closed"
)

const (
	NotifyReasonMissingRecipient   = "missing-recipient"
	NotifyReasonSmtpNotConfigured  = "smtp-not-configured"
	NotifyReasonSendFailed         = "send-failed"
	NotifyReasonUnknownKind        = "unknown-kind"
	NotifyReasonAlreadyApproved    = "already-approved"
	NotifyReasonAlreadyDisapproved = "already-disapproved"
)

// NotifyStatus describes the outcome of a single notification. It is informational only.
type NotifyStatus struct {
	Success   bool   `json:"success"`
	Skipped   bool   `json:"skipped"`
	Reason    string `json:"reason,omitempty"`
	Error     string `json:"error,omitempty"`
	MessageID string `json:"messageId,omitempty"`
}

func NotifySkipped(reason string) NotifyStatus {
	return NotifyStatus{Skipped: true, Reason: reason}
}

func NotifyFailed(err error) NotifyStatus {
	return NotifyStatus{Reason: NotifyReasonSendFailed, Error: err.Error()}
}

func NotifySent(messageID string) NotifyStatus {
	return NotifyStatus{Success: true, MessageID: messageID}
}

// Recipient of a notification. UserID is used for in-app push, Email for mail.
type Recipient struct {
	UserID string
	Email  string
	Name   string
}

// NotificationData is the template payload shared by every notification kind.
type NotificationData struct {
	Name       string
	JobTitle   string
	Status     ApplicationStatus
	IsApproved bool
	Reason     JobCloseReason
}
