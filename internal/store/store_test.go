package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/certavo/certavo-backend/internal/apperrors"
	"github.com/certavo/certavo-backend/internal/model"
)

func TestCreateAndGet(t *testing.T) {
	s := NewMemory()

	id, err := s.Create()
	require.NoError(t, err)
	require.NotEmpty(t, id)

	c, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, id, c.ID)
	require.Empty(t, c.Students)
	require.Nil(t, c.Template)
}

func TestGetUnknownCampaign(t *testing.T) {
	s := NewMemory()

	_, err := s.Get("missing")
	var notFound *apperrors.ErrCampaignNotFound
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "missing", notFound.CampaignID)
}

func TestGetReturnsACopy(t *testing.T) {
	s := NewMemory()
	id, _ := s.Create()
	require.NoError(t, s.AppendStudents(id, []model.Student{{Name: "Alice", Email: "a@x.test", Code: "AAAAAAAA"}}))

	c, err := s.Get(id)
	require.NoError(t, err)
	c.Students[0].Name = "mutated"
	c.EmailMessage = "mutated"

	again, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, "Alice", again.Students[0].Name)
	require.Empty(t, again.EmailMessage)
}

func TestAppendStudentsPreservesUploadOrder(t *testing.T) {
	s := NewMemory()
	id, _ := s.Create()

	require.NoError(t, s.AppendStudents(id, []model.Student{
		{Name: "Alice", Email: "a@x.test", Code: "AAAAAAAA"},
		{Name: "Bob", Email: "b@x.test", Code: "BBBBBBBB"},
	}))
	require.NoError(t, s.AppendStudents(id, []model.Student{
		{Name: "Carla", Email: "c@x.test", Code: "CCCCCCCC"},
	}))

	c, err := s.Get(id)
	require.NoError(t, err)
	require.Len(t, c.Students, 3)
	require.Equal(t, "Alice", c.Students[0].Name)
	require.Equal(t, "Bob", c.Students[1].Name)
	require.Equal(t, "Carla", c.Students[2].Name)
}

func TestSetTemplateReplacesWholesale(t *testing.T) {
	s := NewMemory()
	id, _ := s.Create()

	require.NoError(t, s.SetTemplate(id, model.TemplateDetails{X: 10, Y: 20, FontSize: 12, FontFamily: "Lato", CertificatePath: "/tmp/a.png"}))
	require.NoError(t, s.SetTemplate(id, model.TemplateDetails{X: 30, FontFamily: "Roboto", CertificatePath: "/tmp/b.pdf"}))

	c, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, 30, c.Template.X)
	require.Equal(t, 0, c.Template.Y)
	require.Equal(t, "Roboto", c.Template.FontFamily)
	require.Equal(t, "/tmp/b.pdf", c.Template.CertificatePath)
}

func TestFindByCodeAcrossCampaigns(t *testing.T) {
	s := NewMemory()
	first, _ := s.Create()
	second, _ := s.Create()
	require.NoError(t, s.AppendStudents(first, []model.Student{{Name: "Alice", Email: "a@x.test", Code: "AAAAAAAA"}}))
	require.NoError(t, s.AppendStudents(second, []model.Student{{Name: "Bob", Email: "b@x.test", Code: "BBBBBBBB"}}))

	c, st, err := s.FindByCode("BBBBBBBB")
	require.NoError(t, err)
	require.Equal(t, second, c.ID)
	require.Equal(t, "Bob", st.Name)

	_, _, err = s.FindByCode("ZZZZZZZZ")
	var notFound *apperrors.ErrCodeNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	s := NewMemory()
	id, _ := s.Create()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.AppendStudents(id, []model.Student{{Name: "X", Email: "x@x.test", Code: "AAAAAAAA"}})
		}()
		go func() {
			defer wg.Done()
			s.Get(id)
			s.FindByCode("AAAAAAAA")
		}()
	}
	wg.Wait()

	c, err := s.Get(id)
	require.NoError(t, err)
	require.Len(t, c.Students, 20)
}
