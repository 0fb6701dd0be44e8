package authhandler

import (
	"context"
	"recruitment-backend/db"
	"recruitment-backend/lib/notification"
	usersstore "recruitment-backend/lib/users/store"
	apperrors "recruitment-backend/lib/utils/app-errors"
	authutils "recruitment-backend/lib/utils/auth-utils"
	"recruitment-backend/lib/utils/helpers"
	"recruitment-backend/models"
	authapimodels "recruitment-backend/models/api/auth"
	dbmodels "recruitment-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Register(ctx context.Context, request authapimodels.RegisterRequest) (message string, err error)
	Login(ctx context.Context, request authapimodels.LoginRequest) (authapimodels.LoginResponse, error)
	SetHrApproval(ctx context.Context, hrID string, isApproved bool) (authapimodels.ApprovalResponse, error)
	ListHRs(ctx context.Context) ([]authapimodels.HrView, error)
}

type TokenFunc func(userID, name string, role models.UserRole) (string, error)

var Instance Provider

func NewHandler() {
	Instance = NewInstance(usersstore.NewInstance(db.DB), notification.Instance, authutils.GetToken)
}

func NewInstance(usersStore usersstore.Provider, notifier notification.Provider, issueToken TokenFunc) Provider {
	return &impl{
		usersStore: usersStore,
		notifier:   notifier,
		issueToken: issueToken,
	}
}

type impl struct {
	usersStore usersstore.Provider
	notifier   notification.Provider
	issueToken TokenFunc
}

func (i impl) Register(ctx context.Context, request authapimodels.RegisterRequest) (message string, err error) {
	request.Normalize()
	if request.Role == models.UserRoleAdmin {
		return "", apperrors.Forbidden("Admin registration not allowed")
	}
	if err = request.Validate(); err != nil {
		return "", apperrors.Validation(err.Error())
	}
	if !request.Role.CanSelfRegister() {
		return "", apperrors.Validation("Invalid role")
	}
	logger := log.WithField("email", request.Email).WithField("role", request.Role)

	existed, err := i.usersStore.FindByEmail(request.Email)
	if err != nil {
		return "", errors.Wrap(err, "failed to find user")
	}
	if existed != nil {
		return "", apperrors.Validation("Email already exists")
	}
	hash, err := authutils.HashPassword(request.Password)
	if err != nil {
		return "", err
	}
	rec := dbmodels.User{
		Username:   request.Username,
		Email:      request.Email,
		Password:   hash,
		Role:       request.Role,
		IsApproved: request.Role.ApprovedByDefault(),
	}
	id, err := i.usersStore.Create(rec)
	if err != nil {
		if helpers.IsUniqueViolation(err) {
			return "", apperrors.Validation("Email already exists")
		}
		return "", errors.Wrap(err, "failed to create user")
	}
	logger.WithField("user_id", id).Info("user registered")
	if request.Role == models.UserRoleHR {
		return "HR registered successfully. Awaiting admin approval.", nil
	}
	return "Candidate registered successfully.", nil
}

func (i impl) Login(ctx context.Context, request authapimodels.LoginRequest) (authapimodels.LoginResponse, error) {
	request.Normalize()
	if err := request.Validate(); err != nil {
		return authapimodels.LoginResponse{}, apperrors.Validation(err.Error())
	}
	user, err := i.usersStore.FindByEmail(request.Email)
	if err != nil {
		return authapimodels.LoginResponse{}, errors.Wrap(err, "failed to find user")
	}
	if user == nil || !authutils.CheckPassword(user.Password, request.Password) {
		return authapimodels.LoginResponse{}, apperrors.Unauthorized("Invalid credentials")
	}
	token, err := i.issueToken(user.ID, user.Username, user.Role)
	if err != nil {
		return authapimodels.LoginResponse{}, errors.Wrap(err, "failed to issue token")
	}
	log.WithField("user_id", user.ID).Info("user logged in")
	return authapimodels.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    authapimodels.UserConvert(*user),
	}, nil
}

func (i impl) SetHrApproval(ctx context.Context, hrID string, isApproved bool) (authapimodels.ApprovalResponse, error) {
	user, err := i.usersStore.GetByID(hrID)
	if err != nil {
		return authapimodels.ApprovalResponse{}, errors.Wrap(err, "failed to get user")
	}
	if user == nil || user.Role != models.UserRoleHR {
		return authapimodels.ApprovalResponse{}, apperrors.NotFound("HR not found")
	}
	result := authapimodels.ApprovalResponse{
		Notification: authapimodels.NotificationResult{SentTo: user.Email},
	}
	if user.IsApproved == isApproved {
		if isApproved {
			result.Message = "HR already approved"
			result.Notification.Status = models.NotifySkipped(models.NotifyReasonAlreadyApproved)
		} else {
			result.Message = "HR is already not approved"
			result.Notification.Status = models.NotifySkipped(models.NotifyReasonAlreadyDisapproved)
		}
		return result, nil
	}
	if err = i.usersStore.SetApproved(hrID, isApproved); err != nil {
		return authapimodels.ApprovalResponse{}, errors.Wrap(err, "failed to update approval")
	}
	kind := models.NotificationHrDisapproved
	result.Message = "HR disapproved successfully"
	if isApproved {
		kind = models.NotificationHrApproved
		result.Message = "HR approved successfully"
	}
	log.WithField("user_id", hrID).WithField("is_approved", isApproved).Info("HR approval changed")
	result.Notification.Status = i.notifier.Notify(ctx, kind, user.ToRecipient(), models.NotificationData{
		IsApproved: isApproved,
	})
	return result, nil
}

func (i impl) ListHRs(ctx context.Context) ([]authapimodels.HrView, error) {
	list, err := i.usersStore.ListByRole(models.UserRoleHR)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list HR users")
	}
	result := make([]authapimodels.HrView, 0, len(list))
	for _, rec := range list {
		result = append(result, authapimodels.HrConvert(rec))
	}
	return result, nil
}
