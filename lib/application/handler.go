package applicationhandler

import (
	"context"
	"io"
	"recruitment-backend/config"
	"recruitment-backend/db"
	applicationstore "recruitment-backend/lib/application/store"
	filestorage "recruitment-backend/lib/file-storage"
	jobhandler "recruitment-backend/lib/job"
	jobstore "recruitment-backend/lib/job/store"
	"recruitment-backend/lib/notification"
	usersstore "recruitment-backend/lib/users/store"
	apperrors "recruitment-backend/lib/utils/app-errors"
	"recruitment-backend/lib/utils/helpers"
	"recruitment-backend/models"
	applicationapimodels "recruitment-backend/models/api/application"
	dbmodels "recruitment-backend/models/db"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ResumeUpload is the uploaded resume. Open is called only after the size check passed.
type ResumeUpload struct {
	FileName string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// Resume is a stored resume ready to be streamed to the caller.
type Resume struct {
	filestorage.File
	FileName string
}

type Provider interface {
	Apply(ctx context.Context, userID string, role models.UserRole, jobID string, resume ResumeUpload) (id string, err error)
	UpdateStatus(ctx context.Context, userID string, role models.UserRole, applicationID string, status models.ApplicationStatus) error
	ListMy(ctx context.Context, userID string, role models.UserRole) (list []applicationapimodels.ApplicationView, err error)
	ListForJob(ctx context.Context, userID string, role models.UserRole, jobID string) (list []applicationapimodels.ApplicationView, err error)
	ListForHR(ctx context.Context, userID string, role models.UserRole) (list []applicationapimodels.ApplicationView, err error)
	GetResume(ctx context.Context, userID string, role models.UserRole, applicationID string) (*Resume, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(
		applicationstore.NewInstance(db.DB),
		jobstore.NewInstance(db.DB),
		usersstore.NewInstance(db.DB),
		jobhandler.Instance,
		filestorage.Instance,
		notification.Instance,
		config.Conf.Resume.MaxSizeBytes,
		func(f func()) { go f() },
	)
}

func NewInstance(store applicationstore.Provider, jobStore jobstore.Provider, usersStore usersstore.Provider,
	jobs jobhandler.Provider, fileStorage filestorage.Provider, notifier notification.Provider,
	maxResumeSize int64, goAsync func(func())) Provider {
	return &impl{
		store:         store,
		jobStore:      jobStore,
		usersStore:    usersStore,
		jobs:          jobs,
		fileStorage:   fileStorage,
		notifier:      notifier,
		maxResumeSize: maxResumeSize,
		goAsync:       goAsync,
	}
}

type impl struct {
	store         applicationstore.Provider
	jobStore      jobstore.Provider
	usersStore    usersstore.Provider
	jobs          jobhandler.Provider
	fileStorage   filestorage.Provider
	notifier      notification.Provider
	maxResumeSize int64
	goAsync       func(func())
}

func (i impl) getLogger(userID, id string) *log.Entry {
	logger := log.WithField("user_id", userID)
	if id != "" {
		logger = logger.WithField("id", id)
	}
	return logger
}

func (i impl) Apply(ctx context.Context, userID string, role models.UserRole, jobID string, resume ResumeUpload) (id string, err error) {
	logger := i.getLogger(userID, "").WithField("job_id", jobID)
	if role != models.UserRoleCandidate {
		return "", apperrors.Forbidden("Only candidates can apply")
	}
	body, contentType, err := i.readResume(resume)
	if err != nil {
		return "", err
	}
	job, err := i.jobStore.GetByID(jobID)
	if err != nil {
		return "", errors.Wrap(err, "failed to get job")
	}
	if job == nil || !job.IsOpen {
		return "", apperrors.NotFound("Job not found or closed")
	}
	candidate, err := i.usersStore.GetByID(userID)
	if err != nil {
		return "", errors.Wrap(err, "failed to get candidate")
	}
	if candidate == nil {
		return "", apperrors.Unauthorized("Unauthorized")
	}
	exist, err := i.store.Exist(jobID, userID)
	if err != nil {
		return "", errors.Wrap(err, "failed to check application")
	}
	if exist {
		return "", apperrors.Conflict("You have already applied for this job")
	}

	locator, err := i.fileStorage.Store(ctx, userID, body, resume.FileName, contentType)
	if err != nil {
		return "", errors.Wrap(err, "failed to store resume")
	}
	rec := dbmodels.Application{
		JobID:             jobID,
		CandidateID:       userID,
		Status:            models.ApplicationStatusApplied,
		ResumeLocator:     locator,
		ResumeFilename:    resume.FileName,
		ResumeContentType: contentType,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		if errRemove := i.fileStorage.Remove(context.Background(), locator); errRemove != nil {
			logger.WithError(errRemove).Error("failed to remove orphan resume")
		}
		if helpers.IsUniqueViolation(err) {
			return "", apperrors.Conflict("You have already applied for this job")
		}
		return "", errors.Wrap(err, "failed to create application")
	}
	logger.
		WithField("application_id", id).
		WithField("resume_size", humanize.IBytes(uint64(len(body)))).
		Info("application submitted")

	jobCopy := *job
	candidateCopy := *candidate
	i.goAsync(func() {
		i.notifier.Notify(context.Background(), models.NotificationApplicationSubmitted, candidateCopy.ToRecipient(), models.NotificationData{
			JobTitle: jobCopy.JobTitle,
		})
		i.notifier.Push(jobCopy.CreatedByID, models.NotificationApplicationSubmitted,
			candidateCopy.GetName()+" applied for \""+jobCopy.JobTitle+"\"")
	})
	return id, nil
}

func (i impl) readResume(resume ResumeUpload) (body []byte, contentType string, err error) {
	if resume.FileName == "" || resume.Open == nil {
		return nil, "", apperrors.Validation(applicationapimodels.ErrResumeRequired.Error())
	}
	if err = applicationapimodels.CheckResumeMeta(resume.FileName, resume.Size, i.maxResumeSize); err != nil {
		return nil, "", apperrors.Validation(err.Error())
	}
	file, err := resume.Open()
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to open resume")
	}
	defer file.Close()
	body, err = io.ReadAll(io.LimitReader(file, i.maxResumeSize+1))
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to read resume")
	}
	head := body
	if len(head) > applicationapimodels.ResumeSniffLen {
		head = head[:applicationapimodels.ResumeSniffLen]
	}
	contentType, err = applicationapimodels.ValidateResume(resume.FileName, int64(len(body)), head, i.maxResumeSize)
	if err != nil {
		return nil, "", apperrors.Validation(err.Error())
	}
	return body, contentType, nil
}

func (i impl) UpdateStatus(ctx context.Context, userID string, role models.UserRole, applicationID string, status models.ApplicationStatus) error {
	logger := i.getLogger(userID, applicationID).WithField("status", status)
	if role != models.UserRoleHR {
		return apperrors.Forbidden("HR access only")
	}
	if err := status.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	rec, err := i.store.GetByID(applicationID)
	if err != nil {
		return errors.Wrap(err, "failed to get application")
	}
	if rec == nil {
		return apperrors.NotFound("Application not found")
	}
	job, err := i.jobStore.GetByID(rec.JobID)
	if err != nil {
		return errors.Wrap(err, "failed to get job")
	}
	if job == nil {
		return apperrors.NotFound("Job not found")
	}
	if !job.IsOwner(userID) {
		return apperrors.Forbidden("Access denied")
	}
	if !rec.Status.IsAllowStatusChange(status) {
		return apperrors.Validation("Invalid status")
	}
	if err = i.store.UpdateStatus(applicationID, status); err != nil {
		return errors.Wrap(err, "failed to update application status")
	}
	logger.Info("application status updated")

	candidate, err := i.usersStore.GetByID(rec.CandidateID)
	if err != nil {
		logger.WithError(err).Error("failed to get candidate for notification")
	}
	if candidate != nil {
		candidateCopy := *candidate
		jobTitle := job.JobTitle
		i.goAsync(func() {
			i.notifier.Notify(context.Background(), models.NotificationApplicationStatusChanged, candidateCopy.ToRecipient(), models.NotificationData{
				JobTitle: jobTitle,
				Status:   status,
			})
		})
	}

	if status == models.ApplicationStatusShortlisted {
		return i.autoClose(ctx, *job)
	}
	return nil
}

// autoClose closes the job once its shortlisted applications cover every vacancy.
func (i impl) autoClose(ctx context.Context, job dbmodels.Job) error {
	count, err := i.store.CountByStatus(job.ID, models.ApplicationStatusShortlisted)
	if err != nil {
		return errors.Wrap(err, "failed to count shortlisted applications")
	}
	if count < int64(job.Vacancies) {
		return nil
	}
	_, err = i.jobs.CloseIfOpen(ctx, job, models.JobCloseReasonVacanciesFilled)
	return err
}

func (i impl) ListMy(ctx context.Context, userID string, role models.UserRole) (list []applicationapimodels.ApplicationView, err error) {
	if role != models.UserRoleCandidate {
		return nil, apperrors.Forbidden("Access denied")
	}
	recList, err := i.store.ListByCandidate(userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}
	return applicationapimodels.ConvertList(recList), nil
}

func (i impl) ListForJob(ctx context.Context, userID string, role models.UserRole, jobID string) (list []applicationapimodels.ApplicationView, err error) {
	if role != models.UserRoleHR {
		return nil, apperrors.Forbidden("HR access only")
	}
	job, err := i.jobStore.GetByID(jobID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get job")
	}
	if job == nil {
		return nil, apperrors.NotFound("Job not found")
	}
	if !job.IsOwner(userID) {
		return nil, apperrors.Forbidden("Access denied")
	}
	recList, err := i.store.ListByJob(jobID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}
	for idx := range recList {
		recList[idx].Job = job
	}
	return applicationapimodels.ConvertList(recList), nil
}

func (i impl) ListForHR(ctx context.Context, userID string, role models.UserRole) (list []applicationapimodels.ApplicationView, err error) {
	if role != models.UserRoleHR {
		return nil, apperrors.Forbidden("HR access only")
	}
	recList, err := i.store.ListByJobCreator(userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}
	return applicationapimodels.ConvertList(recList), nil
}

func (i impl) GetResume(ctx context.Context, userID string, role models.UserRole, applicationID string) (*Resume, error) {
	rec, err := i.store.GetByID(applicationID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get application")
	}
	if rec == nil {
		return nil, apperrors.NotFound("Application not found")
	}
	allowed := role == models.UserRoleCandidate && rec.IsCandidate(userID)
	if !allowed && role == models.UserRoleHR {
		job, err := i.jobStore.GetByID(rec.JobID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get job")
		}
		allowed = job != nil && job.IsOwner(userID)
	}
	if !allowed {
		return nil, apperrors.Forbidden("Access denied")
	}
	file, err := i.fileStorage.Retrieve(ctx, rec.ResumeLocator)
	if err != nil {
		if errors.Is(err, filestorage.ErrNotFound) {
			return nil, apperrors.NotFound("No resume found. Please re-upload.")
		}
		return nil, errors.Wrap(err, "failed to get resume")
	}
	if file.ContentType == "" {
		file.ContentType = rec.ResumeContentType
	}
	return &Resume{
		File:     *file,
		FileName: rec.GetResumeFilename(),
	}, nil
}
