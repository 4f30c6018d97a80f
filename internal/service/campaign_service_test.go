package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certavo/certavo-backend/internal/apperrors"
	"github.com/certavo/certavo-backend/internal/fonts"
	"github.com/certavo/certavo-backend/internal/logger"
	"github.com/certavo/certavo-backend/internal/model"
	"github.com/certavo/certavo-backend/internal/queue"
	"github.com/certavo/certavo-backend/internal/store"
)

// recordingQueue captures published jobs instead of running anything.
type recordingQueue struct {
	jobs []queue.DispatchJob
}

func (q *recordingQueue) Publish(topic string, job queue.DispatchJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *recordingQueue) Subscribe(topic string, handler func(job queue.DispatchJob) error) error {
	return nil
}

func newService(t *testing.T) (*CampaignService, *store.MemoryStore, *recordingQueue) {
	t.Helper()
	st := store.NewMemory()
	q := &recordingQueue{}
	svc := &CampaignService{
		Store:      st,
		Fonts:      fonts.Resolver{Dir: t.TempDir()},
		Queue:      q,
		UploadsDir: t.TempDir(),
		Log:        logger.Nop(),
	}
	return svc, st, q
}

func TestActivateWithoutStudents(t *testing.T) {
	svc, st, q := newService(t)
	id, _ := st.Create()
	require.NoError(t, st.SetMessage(id, "Hola {nombre}, {codigo}, {url}"))

	err := svc.Activate(id, "https://x.test")
	var noStudents *apperrors.ErrNoStudents
	require.ErrorAs(t, err, &noStudents)
	assert.Empty(t, q.jobs)
}

func TestActivateWithoutMessage(t *testing.T) {
	svc, st, q := newService(t)
	id, _ := st.Create()
	require.NoError(t, st.AppendStudents(id, []model.Student{{Name: "Alice", Email: "a@x.test", Code: "AAAA1111"}}))

	err := svc.Activate(id, "https://x.test")
	var noMessage *apperrors.ErrNoMessageConfigured
	require.ErrorAs(t, err, &noMessage)
	assert.Empty(t, q.jobs)
}

func TestActivateEnqueuesDispatchJob(t *testing.T) {
	svc, st, q := newService(t)
	id, _ := st.Create()
	require.NoError(t, st.AppendStudents(id, []model.Student{{Name: "Alice", Email: "a@x.test", Code: "AAAA1111"}}))
	require.NoError(t, st.SetMessage(id, "Hola {nombre}, {codigo}, {url}"))

	require.NoError(t, svc.Activate(id, "https://x.test"))
	require.Len(t, q.jobs, 1)
	assert.Equal(t, id, q.jobs[0].CampaignID)
	assert.Equal(t, "https://x.test", q.jobs[0].FixedURL)
}

func TestActivateUnknownCampaign(t *testing.T) {
	svc, _, _ := newService(t)

	err := svc.Activate("missing", "https://x.test")
	var notFound *apperrors.ErrCampaignNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestUpdateTemplateStoresAssetUnderCampaignPrefix(t *testing.T) {
	svc, st, _ := newService(t)
	id, _ := st.Create()

	err := svc.UpdateTemplate(id, 50, 700, 24, "Lato", "diploma.pdf", strings.NewReader("%PDF-fake"))
	require.NoError(t, err)

	c, err := st.Get(id)
	require.NoError(t, err)
	require.NotNil(t, c.Template)
	assert.Equal(t, 50, c.Template.X)
	assert.Equal(t, 700, c.Template.Y)
	assert.Equal(t, 24, c.Template.FontSize)
	assert.Equal(t, "Lato", c.Template.FontFamily)
	assert.Equal(t, id+"_diploma.pdf", filepath.Base(c.Template.CertificatePath))

	data, err := os.ReadFile(c.Template.CertificatePath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(data))
}

func TestCertificateByUnknownCode(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.CertificateByCode("ZZZZZZZZ")
	var notFound *apperrors.ErrCodeNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestCertificateWithoutTemplate(t *testing.T) {
	svc, st, _ := newService(t)
	id, _ := st.Create()
	require.NoError(t, st.AppendStudents(id, []model.Student{{Name: "Alice", Email: "a@x.test", Code: "AAAA1111"}}))

	_, err := svc.CertificateByCode("AAAA1111")
	var noTemplate *apperrors.ErrTemplateNotConfigured
	require.ErrorAs(t, err, &noTemplate)
}

func TestCertificateFontResolutionFailureAbortsRender(t *testing.T) {
	svc, st, _ := newService(t)
	id, _ := st.Create()
	require.NoError(t, st.AppendStudents(id, []model.Student{{Name: "Alice", Email: "a@x.test", Code: "AAAA1111"}}))
	require.NoError(t, st.SetTemplate(id, model.TemplateDetails{
		X: 10, Y: 10, FontSize: 12, FontFamily: "Ghost", CertificatePath: "/tmp/none.pdf",
	}))

	_, err := svc.CertificateByCode("AAAA1111")
	var fontNotFound *apperrors.ErrFontNotFound
	require.ErrorAs(t, err, &fontNotFound)
}
