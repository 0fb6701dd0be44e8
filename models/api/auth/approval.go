package authapimodels

import (
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
	"time"
)

type NotificationResult struct {
	SentTo string              `json:"sentTo"`
	Status models.NotifyStatus `json:"status"`
}

type ApprovalResponse struct {
	Message      string             `json:"message"`
	Notification NotificationResult `json:"notification"`
}

type HrView struct {
	UserView
	CreatedAt time.Time `json:"createdAt"`
}

func HrConvert(rec dbmodels.User) HrView {
	return HrView{
		UserView:  UserConvert(rec),
		CreatedAt: rec.CreatedAt,
	}
}
