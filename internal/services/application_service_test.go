package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/models"
	"jobboard/internal/pdf"
)

type fakeJobRepo struct {
	jobs map[int]*models.Job
}

func (f *fakeJobRepo) Create(job *models.Job) error { return nil }
func (f *fakeJobRepo) GetByID(id int) (*models.Job, error) {
	if j, ok := f.jobs[id]; ok {
		return j, nil
	}
	return nil, nil
}
func (f *fakeJobRepo) Update(job *models.Job) error                   { return nil }
func (f *fakeJobRepo) Delete(id int) error                            { return nil }
func (f *fakeJobRepo) List(_ models.JobFilter) ([]*models.Job, error) { return nil, nil }
func (f *fakeJobRepo) GetCount() (int, error)                         { return len(f.jobs), nil }

type fakeApplicationRepo struct {
	apps   []*models.Application
	nextID int
}

func (f *fakeApplicationRepo) Create(app *models.Application) error {
	f.nextID++
	app.ID = f.nextID
	app.CreatedAt = time.Now()
	f.apps = append(f.apps, app)
	return nil
}

func (f *fakeApplicationRepo) GetByID(id int) (*models.Application, error) {
	for _, a := range f.apps {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeApplicationRepo) ExistsByJobAndUser(jobID, userID int) (bool, error) {
	for _, a := range f.apps {
		if a.JobID == jobID && a.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationRepo) ListByJob(jobID int) ([]*models.Application, error) {
	var out []*models.Application
	for _, a := range f.apps {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ListByUser(userID int) ([]*models.Application, error) {
	var out []*models.Application
	for _, a := range f.apps {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) UpdateStatus(id int, status string) error {
	for _, a := range f.apps {
		if a.ID == id {
			a.Status = status
			return nil
		}
	}
	return nil
}

func (f *fakeApplicationRepo) Delete(id int) error { return nil }

type fakePDFGenerator struct {
	lastData pdf.ApplicantListData
}

func (f *fakePDFGenerator) GenerateApplicantList(data pdf.ApplicantListData) (string, error) {
	f.lastData = data
	return "/tmp/applicants.pdf", nil
}

type recordingNotifier struct {
	notified []string
}

func (r *recordingNotifier) NotifyNewApplication(jobTitle, applicantName, applicantEmail string) error {
	r.notified = append(r.notified, jobTitle)
	return nil
}

type appEnv struct {
	jobs     *fakeJobRepo
	apps     *fakeApplicationRepo
	users    *fakeUserRepo
	pdfGen   *fakePDFGenerator
	notifier *recordingNotifier
	svc      ApplicationService
}

func newAppEnv(t *testing.T) *appEnv {
	t.Helper()
	env := &appEnv{
		jobs: &fakeJobRepo{jobs: map[int]*models.Job{
			1: {ID: 1, Title: "Go Developer", Company: "Acme", Status: models.JobStatusOpen},
			2: {ID: 2, Title: "Old Role", Company: "Acme", Status: models.JobStatusClosed},
		}},
		apps:     &fakeApplicationRepo{},
		users:    newFakeUserRepo(),
		pdfGen:   &fakePDFGenerator{},
		notifier: &recordingNotifier{},
	}
	require.NoError(t, env.users.Create(&models.User{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"}))
	env.svc = NewApplicationService(env.apps, env.jobs, env.users, env.pdfGen, env.notifier)
	return env
}

func TestApply_Success(t *testing.T) {
	env := newAppEnv(t)

	app, err := env.svc.Apply(1, 1, "  hi there  ", "https://cv.example/jane.pdf")
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.Equal(t, "hi there", app.CoverLetter)
	assert.Equal(t, []string{"Go Developer"}, env.notifier.notified)
}

func TestApply_DuplicateRejected(t *testing.T) {
	env := newAppEnv(t)

	_, err := env.svc.Apply(1, 1, "", "")
	require.NoError(t, err)

	_, err = env.svc.Apply(1, 1, "", "")
	require.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestApply_ClosedJobRejected(t *testing.T) {
	env := newAppEnv(t)

	_, err := env.svc.Apply(1, 2, "", "")
	require.ErrorIs(t, err, ErrJobClosed)
}

func TestApply_UnknownJobRejected(t *testing.T) {
	env := newAppEnv(t)

	_, err := env.svc.Apply(1, 99, "", "")
	require.ErrorIs(t, err, ErrJobNotFound)
}

func TestApply_NilNotifierIsFine(t *testing.T) {
	env := newAppEnv(t)
	env.svc = NewApplicationService(env.apps, env.jobs, env.users, env.pdfGen, nil)

	_, err := env.svc.Apply(1, 1, "", "")
	require.NoError(t, err)
}

func TestUpdateStatus_Validation(t *testing.T) {
	env := newAppEnv(t)
	app, err := env.svc.Apply(1, 1, "", "")
	require.NoError(t, err)

	require.Error(t, env.svc.UpdateStatus(app.ID, "bogus"))
	require.ErrorIs(t, env.svc.UpdateStatus(999, models.ApplicationAccepted), ErrApplicationNotFound)

	require.NoError(t, env.svc.UpdateStatus(app.ID, models.ApplicationAccepted))
	got, err := env.apps.GetByID(app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationAccepted, got.Status)
}

func TestExportApplicantsPDF(t *testing.T) {
	env := newAppEnv(t)
	_, err := env.svc.Apply(1, 1, "", "")
	require.NoError(t, err)

	path, err := env.svc.ExportApplicantsPDF(1)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/applicants.pdf", path)
	assert.Equal(t, "Go Developer", env.pdfGen.lastData.JobTitle)
	assert.Len(t, env.pdfGen.lastData.Applicants, 1)

	_, err = env.svc.ExportApplicantsPDF(99)
	require.ErrorIs(t, err, ErrJobNotFound)
}
