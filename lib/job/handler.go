package jobhandler

import (
	"context"
	"recruitment-backend/db"
	applicationstore "recruitment-backend/lib/application/store"
	jobcache "recruitment-backend/lib/job/cache"
	jobstore "recruitment-backend/lib/job/store"
	"recruitment-backend/lib/notification"
	usersstore "recruitment-backend/lib/users/store"
	apperrors "recruitment-backend/lib/utils/app-errors"
	"recruitment-backend/models"
	jobapimodels "recruitment-backend/models/api/job"
	dbmodels "recruitment-backend/models/db"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(ctx context.Context, userID string, data jobapimodels.JobData) (id string, err error)
	ListMy(ctx context.Context, userID string) (list []jobapimodels.JobView, err error)
	ListAll(ctx context.Context) (list []jobapimodels.JobView, err error)
	ListOpen(ctx context.Context) (list []jobapimodels.JobView, err error)
	// Close closes the job on behalf of its owner or an admin. alreadyClosed is true when nothing changed.
	Close(ctx context.Context, userID string, role models.UserRole, jobID string) (alreadyClosed bool, err error)
	// CloseIfOpen flips the job to closed and notifies applicants when this call did the flip.
	CloseIfOpen(ctx context.Context, job dbmodels.Job, reason models.JobCloseReason) (closed bool, err error)
}

var Instance Provider

func NewHandler(cache jobcache.Provider) {
	Instance = NewInstance(
		jobstore.NewInstance(db.DB),
		usersstore.NewInstance(db.DB),
		applicationstore.NewInstance(db.DB),
		cache,
		notification.Instance,
		func(f func()) { go f() },
	)
}

func NewInstance(store jobstore.Provider, usersStore usersstore.Provider, applicationStore applicationstore.Provider,
	cache jobcache.Provider, notifier notification.Provider, goAsync func(func())) Provider {
	return &impl{
		store:            store,
		usersStore:       usersStore,
		applicationStore: applicationStore,
		cache:            cache,
		notifier:         notifier,
		goAsync:          goAsync,
		policy:           bluemonday.UGCPolicy(),
	}
}

type impl struct {
	store            jobstore.Provider
	usersStore       usersstore.Provider
	applicationStore applicationstore.Provider
	cache            jobcache.Provider
	notifier         notification.Provider
	goAsync          func(func())
	policy           *bluemonday.Policy
}

func (i impl) getLogger(userID, jobID string) *log.Entry {
	logger := log.WithField("user_id", userID)
	if jobID != "" {
		logger = logger.WithField("job_id", jobID)
	}
	return logger
}

func (i impl) Create(ctx context.Context, userID string, data jobapimodels.JobData) (id string, err error) {
	logger := i.getLogger(userID, "")
	user, err := i.usersStore.GetByID(userID)
	if err != nil {
		return "", errors.Wrap(err, "failed to get user")
	}
	if user == nil {
		return "", apperrors.Unauthorized("Unauthorized")
	}
	if user.Role != models.UserRoleHR {
		return "", apperrors.Forbidden("HR access only")
	}
	if !user.IsApproved {
		return "", apperrors.Forbidden("HR not approved by admin")
	}

	data.Normalize()
	data.JobDescription = i.policy.Sanitize(data.JobDescription)
	if err = data.Validate(); err != nil {
		return "", apperrors.Validation(err.Error())
	}
	rec := dbmodels.Job{
		JobTitle:       data.JobTitle,
		JobDescription: data.JobDescription,
		RequiredSkills: []string(data.RequiredSkills),
		Experience:     *data.Experience,
		Location:       data.Location,
		JobType:        data.JobType,
		Vacancies:      *data.Vacancies,
		IsOpen:         true,
		CreatedByID:    userID,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "failed to create job")
	}
	i.invalidateCache()
	logger.WithField("job_id", id).Info("job created")
	return id, nil
}

func (i impl) ListMy(ctx context.Context, userID string) (list []jobapimodels.JobView, err error) {
	recList, err := i.store.ListByCreator(userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list jobs")
	}
	return convertList(recList), nil
}

func (i impl) ListAll(ctx context.Context) (list []jobapimodels.JobView, err error) {
	recList, err := i.store.ListAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list jobs")
	}
	return convertList(recList), nil
}

func (i impl) ListOpen(ctx context.Context) (list []jobapimodels.JobView, err error) {
	var generation uint64
	if i.cache != nil {
		if recList, ok := i.cache.GetOpenJobs(); ok {
			return convertList(recList), nil
		}
		generation = i.cache.Generation()
	}
	recList, err := i.store.ListOpen()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list open jobs")
	}
	if i.cache != nil {
		// skipped when a job was created or closed during the read
		i.cache.SetOpenJobs(generation, recList)
	}
	return convertList(recList), nil
}

func (i impl) Close(ctx context.Context, userID string, role models.UserRole, jobID string) (alreadyClosed bool, err error) {
	job, err := i.store.GetByID(jobID)
	if err != nil {
		return false, errors.Wrap(err, "failed to get job")
	}
	if job == nil {
		return false, apperrors.NotFound("Job not found")
	}
	if role != models.UserRoleAdmin && !(role == models.UserRoleHR && job.IsOwner(userID)) {
		return false, apperrors.Forbidden("Access denied")
	}
	if !job.IsOpen {
		return true, nil
	}
	closed, err := i.CloseIfOpen(ctx, *job, models.JobCloseReasonManual)
	if err != nil {
		return false, err
	}
	// a concurrent request won the flip
	return !closed, nil
}

func (i impl) CloseIfOpen(ctx context.Context, job dbmodels.Job, reason models.JobCloseReason) (closed bool, err error) {
	logger := i.getLogger("", job.ID).WithField("reason", reason)
	closed, err = i.store.CloseIfOpen(job.ID)
	if err != nil {
		return false, errors.Wrap(err, "failed to close job")
	}
	if !closed {
		return false, nil
	}
	i.invalidateCache()
	logger.Info("job closed")
	i.goAsync(func() {
		i.notifyClosed(job, reason)
	})
	return true, nil
}

func (i impl) notifyClosed(job dbmodels.Job, reason models.JobCloseReason) {
	logger := i.getLogger("", job.ID)
	candidates, err := i.applicationStore.ListCandidatesOfJob(job.ID)
	if err != nil {
		logger.WithError(err).Error("failed to get job applicants for closure notification")
		return
	}
	recipients := make([]models.Recipient, 0, len(candidates))
	for _, candidate := range candidates {
		recipients = append(recipients, candidate.ToRecipient())
	}
	i.notifier.Broadcast(context.Background(), models.NotificationJobClosed, recipients, models.NotificationData{
		JobTitle: job.JobTitle,
		Reason:   reason,
	})
}

func (i impl) invalidateCache() {
	if i.cache != nil {
		i.cache.Invalidate()
	}
}

func convertList(recList []dbmodels.Job) []jobapimodels.JobView {
	result := make([]jobapimodels.JobView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, jobapimodels.Convert(rec))
	}
	return result
}
