package applicationhandler

import (
	"bytes"
	"context"
	"io"
	filestorage "recruitment-backend/lib/file-storage"
	jobhandler "recruitment-backend/lib/job"
	"recruitment-backend/lib/notification"
	apperrors "recruitment-backend/lib/utils/app-errors"
	"recruitment-backend/internal/testutil/memstore"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const maxResumeSize = 5 * 1024 * 1024

type notifyCall struct {
	kind      models.NotificationKind
	recipient models.Recipient
	data      models.NotificationData
}

type fakeNotifier struct {
	mu         sync.Mutex
	notified   []notifyCall
	broadcasts []notifyCall
	pushed     []string
}

func (f *fakeNotifier) Notify(ctx context.Context, kind models.NotificationKind, recipient models.Recipient, data models.NotificationData) models.NotifyStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, notifyCall{kind: kind, recipient: recipient, data: data})
	return models.NotifySent("")
}

func (f *fakeNotifier) Broadcast(ctx context.Context, kind models.NotificationKind, recipients []models.Recipient, data models.NotificationData) []notification.BroadcastResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, recipient := range notification.DedupRecipients(recipients) {
		f.broadcasts = append(f.broadcasts, notifyCall{kind: kind, recipient: recipient, data: data})
	}
	return nil
}

func (f *fakeNotifier) Push(userID string, kind models.NotificationKind, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = append(f.pushed, userID)
}

func (f *fakeNotifier) notifiedKinds(kind models.NotificationKind) []notifyCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []notifyCall{}
	for _, call := range f.notified {
		if call.kind == kind {
			result = append(result, call)
		}
	}
	return result
}

type fakeStorage struct {
	mu       sync.Mutex
	files    map[string][]byte
	types    map[string]string
	storeErr error
	seq      int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStorage) Store(ctx context.Context, candidateID string, body []byte, fileName, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.storeErr != nil {
		return "", f.storeErr
	}
	f.seq++
	locator := filestorage.ObjectKey(candidateID, string(rune('a'+f.seq)), fileName)
	f.files[locator] = body
	f.types[locator] = contentType
	return locator, nil
}

func (f *fakeStorage) Retrieve(ctx context.Context, locator string) (*filestorage.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.files[locator]
	if !ok {
		return nil, filestorage.ErrNotFound
	}
	return &filestorage.File{Body: io.NopCloser(bytes.NewReader(body)), Size: int64(len(body)), ContentType: f.types[locator]}, nil
}

func (f *fakeStorage) Remove(ctx context.Context, locator string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, locator)
	return nil
}

func (f *fakeStorage) MakeBucket(ctx context.Context) error {
	return nil
}

func (f *fakeStorage) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

type env struct {
	db       *memstore.DB
	storage  *fakeStorage
	notifier *fakeNotifier
	jobs     jobhandler.Provider
	handler  Provider
	hr       dbmodels.User
}

func newEnv() *env {
	mem := memstore.New()
	storage := newFakeStorage()
	notifier := &fakeNotifier{}
	runSync := func(f func()) { f() }
	jobs := jobhandler.NewInstance(mem.Jobs(), mem.Users(), mem.Applications(), nil, notifier, runSync)
	return &env{
		db:       mem,
		storage:  storage,
		notifier: notifier,
		jobs:     jobs,
		handler:  NewInstance(mem.Applications(), mem.Jobs(), mem.Users(), jobs, storage, notifier, maxResumeSize, runSync),
		hr:       mem.AddUser("hr", "hr@example.com", models.UserRoleHR, true),
	}
}

func (e *env) candidate(name string) dbmodels.User {
	return e.db.AddUser(name, name+"@example.com", models.UserRoleCandidate, true)
}

func pdfUpload(size int) ResumeUpload {
	body := append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte("x"), size)...)
	return ResumeUpload{
		FileName: "cv.pdf",
		Size:     int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		},
	}
}

func (e *env) apply(t *testing.T, candidate dbmodels.User, jobID string) string {
	id, err := e.handler.Apply(context.Background(), candidate.ID, models.UserRoleCandidate, jobID, pdfUpload(100))
	require.NoError(t, err)
	return id
}

func TestApply(t *testing.T) {
	t.Run("creates applied record and notifies candidate", func(t *testing.T) {
		e := newEnv()
		job := e.db.AddJob(e.hr.ID, "Go Developer", 1)
		alice := e.candidate("alice")

		id := e.apply(t, alice, job.ID)
		rec, ok := e.db.GetApplication(id)
		require.True(t, ok)
		require.Equal(t, models.ApplicationStatusApplied, rec.Status)
		require.Equal(t, "application/pdf", rec.ResumeContentType)
		require.Equal(t, "cv.pdf", rec.ResumeFilename)
		require.True(t, strings.HasPrefix(rec.ResumeLocator, "resumes/"+alice.ID+"/"))

		calls := e.notifier.notifiedKinds(models.NotificationApplicationSubmitted)
		require.Len(t, calls, 1)
		require.Equal(t, "alice@example.com", calls[0].recipient.Email)
		require.Equal(t, "Go Developer", calls[0].data.JobTitle)
		require.Contains(t, e.notifier.pushed, e.hr.ID)
	})
	t.Run("hr can not apply", func(t *testing.T) {
		e := newEnv()
		job := e.db.AddJob(e.hr.ID, "Go Developer", 1)
		_, err := e.handler.Apply(context.Background(), e.hr.ID, models.UserRoleHR, job.ID, pdfUpload(10))
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})
	t.Run("closed or missing job is not found", func(t *testing.T) {
		e := newEnv()
		job := e.db.AddJob(e.hr.ID, "Go Developer", 1)
		_, err := e.db.Jobs().CloseIfOpen(job.ID)
		require.NoError(t, err)
		alice := e.candidate("alice")

		_, err = e.handler.Apply(context.Background(), alice.ID, models.UserRoleCandidate, job.ID, pdfUpload(10))
		require.True(t, apperrors.Is(err, apperrors.KindNotFound))
		_, err = e.handler.Apply(context.Background(), alice.ID, models.UserRoleCandidate, "missing", pdfUpload(10))
		require.True(t, apperrors.Is(err, apperrors.KindNotFound))
		require.Zero(t, e.db.ApplicationCount())
	})
	t.Run("second application is a conflict", func(t *testing.T) {
		e := newEnv()
		job := e.db.AddJob(e.hr.ID, "Go Developer", 1)
		alice := e.candidate("alice")
		e.apply(t, alice, job.ID)

		_, err := e.handler.Apply(context.Background(), alice.ID, models.UserRoleCandidate, job.ID, pdfUpload(10))
		require.True(t, apperrors.Is(err, apperrors.KindConflict))
		require.Equal(t, 1, e.db.ApplicationCount())
		require.Equal(t, 1, e.storage.count())
	})
	t.Run("oversize resume", func(t *testing.T) {
		e := newEnv()
		job := e.db.AddJob(e.hr.ID, "Go Developer", 1)
		alice := e.candidate("alice")

		_, err := e.handler.Apply(context.Background(), alice.ID, models.UserRoleCandidate, job.ID, pdfUpload(6*1024*1024))
		require.True(t, apperrors.Is(err, apperrors.KindValidation))
		require.Equal(t, "Resume file must be 5MB or smaller", apperrors.Message(err))
		require.Zero(t, e.db.ApplicationCount())
		require.Zero(t, e.storage.count())
	})
	t.Run("invalid resume files", func(t *testing.T) {
		e := newEnv()
		job := e.db.AddJob(e.hr.ID, "Go Developer", 1)
		alice := e.candidate("alice")

		_, err := e.handler.Apply(context.Background(), alice.ID, models.UserRoleCandidate, job.ID, ResumeUpload{})
		require.True(t, apperrors.Is(err, apperrors.KindValidation))

		exe := pdfUpload(10)
		exe.FileName = "cv.exe"
		_, err = e.handler.Apply(context.Background(), alice.ID, models.UserRoleCandidate, job.ID, exe)
		require.True(t, apperrors.Is(err, apperrors.KindValidation))

		fake := ResumeUpload{FileName: "cv.pdf", Size: 4, Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("MZ\x90\x00")), nil
		}}
		_, err = e.handler.Apply(context.Background(), alice.ID, models.UserRoleCandidate, job.ID, fake)
		require.True(t, apperrors.Is(err, apperrors.KindValidation))
		require.Zero(t, e.db.ApplicationCount())
	})
	t.Run("storage failure creates no record", func(t *testing.T) {
		e := newEnv()
		job := e.db.AddJob(e.hr.ID, "Go Developer", 1)
		alice := e.candidate("alice")
		e.storage.storeErr = errors.New("s3 unavailable")

		_, err := e.handler.Apply(context.Background(), alice.ID, models.UserRoleCandidate, job.ID, pdfUpload(10))
		require.Error(t, err)
		require.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
		require.Zero(t, e.db.ApplicationCount())
	})
	t.Run("record failure removes stored resume", func(t *testing.T) {
		e := newEnv()
		job := e.db.AddJob(e.hr.ID, "Go Developer", 1)
		alice := e.candidate("alice")
		e.db.FailCreateApplication = errors.New("db is down")

		_, err := e.handler.Apply(context.Background(), alice.ID, models.UserRoleCandidate, job.ID, pdfUpload(10))
		require.Error(t, err)
		require.Zero(t, e.storage.count())
		require.Empty(t, e.notifier.notifiedKinds(models.NotificationApplicationSubmitted))
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("shortlisting the last vacancy closes the job once", func(t *testing.T) {
		e := newEnv()
		job := e.db.AddJob(e.hr.ID, "Go Developer", 1)
		alice := e.candidate("alice")
		bob := e.candidate("bob")
		aliceApp := e.apply(t, alice, job.ID)
		e.apply(t, bob, job.ID)

		err := e.handler.UpdateStatus(context.Background(), e.hr.ID, models.UserRoleHR, aliceApp, models.ApplicationStatusShortlisted)
		require.NoError(t, err)

		rec, _ := e.db.GetJob(job.ID)
		require.False(t, rec.IsOpen)
		require.Len(t, e.notifier.broadcasts, 2)
		for _, call := range e.notifier.broadcasts {
			require.Equal(t, models.NotificationJobClosed, call.kind)
			require.Equal(t, models.JobCloseReasonVacanciesFilled, call.data.Reason)
		}
		statusCalls := e.notifier.notifiedKinds(models.NotificationApplicationStatusChanged)
		require.Len(t, statusCalls, 1)
		require.Equal(t, models.ApplicationStatusShortlisted, statusCalls[0].data.Status)

		// reshortlisting after the flip sends no further closure
		err = e.handler.UpdateStatus(context.Background(), e.hr.ID, models.UserRoleHR, aliceApp, models.ApplicationStatusShortlisted)
		require.NoError(t, err)
		require.Len(t, e.notifier.broadcasts, 2)
	})
	t.Run("job stays open below vacancies", func(t *testing.T) {
		e := newEnv()
		job := e.db.AddJob(e.hr.ID, "Go Developer", 2)
		aliceApp := e.apply(t, e.candidate("alice"), job.ID)
		require.NoError(t, e.handler.UpdateStatus(context.Background(), e.hr.ID, models.UserRoleHR, aliceApp, models.ApplicationStatusShortlisted))
		rec, _ := e.db.GetJob(job.ID)
		require.True(t, rec.IsOpen)
		require.Empty(t, e.notifier.broadcasts)
	})
	t.Run("status can move back", func(t *testing.T) {
		e := newEnv()
		job := e.db.AddJob(e.hr.ID, "Go Developer", 3)
		aliceApp := e.apply(t, e.candidate("alice"), job.ID)
		for _, status := range []models.ApplicationStatus{models.ApplicationStatusRejected, models.ApplicationStatusApplied, models.ApplicationStatusShortlisted} {
			require.NoError(t, e.handler.UpdateStatus(context.Background(), e.hr.ID, models.UserRoleHR, aliceApp, status))
			rec, _ := e.db.GetApplication(aliceApp)
			require.Equal(t, status, rec.Status)
		}
	})
	t.Run("role and ownership", func(t *testing.T) {
		e := newEnv()
		job := e.db.AddJob(e.hr.ID, "Go Developer", 1)
		alice := e.candidate("alice")
		aliceApp := e.apply(t, alice, job.ID)
		other := e.db.AddUser("other", "other@example.com", models.UserRoleHR, true)

		err := e.handler.UpdateStatus(context.Background(), alice.ID, models.UserRoleCandidate, aliceApp, models.ApplicationStatusShortlisted)
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
		err = e.handler.UpdateStatus(context.Background(), other.ID, models.UserRoleHR, aliceApp, models.ApplicationStatusShortlisted)
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
		err = e.handler.UpdateStatus(context.Background(), e.hr.ID, models.UserRoleHR, aliceApp, "hired")
		require.True(t, apperrors.Is(err, apperrors.KindValidation))
		err = e.handler.UpdateStatus(context.Background(), e.hr.ID, models.UserRoleHR, "missing", models.ApplicationStatusRejected)
		require.True(t, apperrors.Is(err, apperrors.KindNotFound))

		rec, _ := e.db.GetApplication(aliceApp)
		require.Equal(t, models.ApplicationStatusApplied, rec.Status)
	})
	t.Run("concurrent shortlists broadcast once per candidate", func(t *testing.T) {
		e := newEnv()
		job := e.db.AddJob(e.hr.ID, "Go Developer", 2)
		ids := []string{}
		for _, name := range []string{"a", "b", "c", "d"} {
			ids = append(ids, e.apply(t, e.candidate(name), job.ID))
		}
		errCh := make(chan error, len(ids))
		wg := sync.WaitGroup{}
		for _, id := range ids {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				errCh <- e.handler.UpdateStatus(context.Background(), e.hr.ID, models.UserRoleHR, id, models.ApplicationStatusShortlisted)
			}(id)
		}
		wg.Wait()
		close(errCh)
		for err := range errCh {
			require.NoError(t, err)
		}
		rec, _ := e.db.GetJob(job.ID)
		require.False(t, rec.IsOpen)
		require.Len(t, e.notifier.broadcasts, 4)
	})
}

func TestManualCloseKeepsApplications(t *testing.T) {
	e := newEnv()
	job := e.db.AddJob(e.hr.ID, "Go Developer", 3)
	aliceApp := e.apply(t, e.candidate("alice"), job.ID)

	alreadyClosed, err := e.jobs.Close(context.Background(), e.hr.ID, models.UserRoleHR, job.ID)
	require.NoError(t, err)
	require.False(t, alreadyClosed)
	require.Len(t, e.notifier.broadcasts, 1)
	require.Equal(t, models.JobCloseReasonManual, e.notifier.broadcasts[0].data.Reason)

	alreadyClosed, err = e.jobs.Close(context.Background(), e.hr.ID, models.UserRoleHR, job.ID)
	require.NoError(t, err)
	require.True(t, alreadyClosed)
	require.Len(t, e.notifier.broadcasts, 1)

	rec, _ := e.db.GetApplication(aliceApp)
	require.Equal(t, models.ApplicationStatusApplied, rec.Status)
}

func TestLists(t *testing.T) {
	e := newEnv()
	job := e.db.AddJob(e.hr.ID, "Go Developer", 3)
	other := e.db.AddUser("other", "other@example.com", models.UserRoleHR, true)
	otherJob := e.db.AddJob(other.ID, "QA", 1)
	alice := e.candidate("alice")
	e.apply(t, alice, job.ID)
	e.apply(t, alice, otherJob.ID)

	my, err := e.handler.ListMy(context.Background(), alice.ID, models.UserRoleCandidate)
	require.NoError(t, err)
	require.Len(t, my, 2)
	require.NotNil(t, my[0].Job)

	_, err = e.handler.ListMy(context.Background(), e.hr.ID, models.UserRoleHR)
	require.True(t, apperrors.Is(err, apperrors.KindForbidden))

	forJob, err := e.handler.ListForJob(context.Background(), e.hr.ID, models.UserRoleHR, job.ID)
	require.NoError(t, err)
	require.Len(t, forJob, 1)
	require.Equal(t, "alice@example.com", forJob[0].Candidate.Email)

	_, err = e.handler.ListForJob(context.Background(), e.hr.ID, models.UserRoleHR, otherJob.ID)
	require.True(t, apperrors.Is(err, apperrors.KindForbidden))

	all, err := e.handler.ListForHR(context.Background(), e.hr.ID, models.UserRoleHR)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, job.ID, all[0].JobID)
}

func TestGetResume(t *testing.T) {
	e := newEnv()
	job := e.db.AddJob(e.hr.ID, "Go Developer", 3)
	alice := e.candidate("alice")
	bob := e.candidate("bob")
	other := e.db.AddUser("other", "other@example.com", models.UserRoleHR, true)
	admin := e.db.AddUser("admin", "admin@example.com", models.UserRoleAdmin, true)
	appID := e.apply(t, alice, job.ID)

	for _, caller := range []dbmodels.User{alice, e.hr} {
		resume, err := e.handler.GetResume(context.Background(), caller.ID, caller.Role, appID)
		require.NoError(t, err)
		require.Equal(t, "cv.pdf", resume.FileName)
		require.Equal(t, "application/pdf", resume.ContentType)
		body, err := io.ReadAll(resume.Body)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
	}
	for _, caller := range []dbmodels.User{bob, other, admin} {
		_, err := e.handler.GetResume(context.Background(), caller.ID, caller.Role, appID)
		require.True(t, apperrors.Is(err, apperrors.KindForbidden), caller.Username)
	}

	rec, _ := e.db.GetApplication(appID)
	require.NoError(t, e.storage.Remove(context.Background(), rec.ResumeLocator))
	_, err := e.handler.GetResume(context.Background(), alice.ID, alice.Role, appID)
	require.True(t, apperrors.Is(err, apperrors.KindNotFound))
	require.Equal(t, "No resume found. Please re-upload.", apperrors.Message(err))
}
