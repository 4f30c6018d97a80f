package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/certavo/certavo-backend/internal/apperrors"
	"github.com/certavo/certavo-backend/internal/fonts"
	"github.com/certavo/certavo-backend/internal/model"
	"github.com/certavo/certavo-backend/internal/queue"
	"github.com/certavo/certavo-backend/internal/render"
	"github.com/certavo/certavo-backend/internal/store"
)

// CampaignService orchestrates the campaign lifecycle: creation, the three
// update operations, activation, and certificate lookup by code.
type CampaignService struct {
	Store      store.Store
	Fonts      fonts.Resolver
	Renderer   render.Renderer
	Queue      queue.Queue
	UploadsDir string
	Log        zerolog.Logger
}

func (s *CampaignService) CreateCampaign() (string, error) {
	return s.Store.Create()
}

func (s *CampaignService) GetCampaign(id string) (*model.Campaign, error) {
	return s.Store.Get(id)
}

// UpdateTemplate stores the uploaded certificate asset under the uploads
// directory as {campaign_id}_{filename} and replaces the campaign's template
// details wholesale.
func (s *CampaignService) UpdateTemplate(campaignID string, x, y, fontSize int, fontFamily, filename string, certificate io.Reader) error {
	if _, err := s.Store.Get(campaignID); err != nil {
		return err
	}

	path := filepath.Join(s.UploadsDir, campaignID+"_"+filepath.Base(filename))
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("store certificate asset: %w", err)
	}
	if _, err := io.Copy(dst, certificate); err != nil {
		dst.Close()
		return fmt.Errorf("store certificate asset: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("store certificate asset: %w", err)
	}

	return s.Store.SetTemplate(campaignID, model.TemplateDetails{
		X:               x,
		Y:               y,
		FontSize:        fontSize,
		FontFamily:      fontFamily,
		CertificatePath: path,
	})
}

func (s *CampaignService) UpdateMessage(campaignID, message string) error {
	if _, err := s.Store.Get(campaignID); err != nil {
		return err
	}
	return s.Store.SetMessage(campaignID, message)
}

// Activate checks the dispatch preconditions synchronously, then enqueues
// the send so the caller gets an acknowledgement without waiting on any
// email delivery.
func (s *CampaignService) Activate(campaignID, fixedURL string) error {
	c, err := s.Store.Get(campaignID)
	if err != nil {
		return err
	}
	if len(c.Students) == 0 {
		return apperrors.NewNoStudents(campaignID)
	}
	if strings.TrimSpace(c.EmailMessage) == "" {
		return apperrors.NewNoMessageConfigured(campaignID)
	}

	s.Log.Info().
		Str("campaign_id", campaignID).
		Int("students", len(c.Students)).
		Msg("campaign activated, enqueueing dispatch")
	return s.Queue.Publish(queue.TopicDispatch, queue.DispatchJob{
		CampaignID: campaignID,
		FixedURL:   fixedURL,
	})
}

// CertificateByCode reverse-maps a redemption code to its student and
// campaign and renders that student's certificate. Codes are only unique
// per campaign, so this scans all of them.
func (s *CampaignService) CertificateByCode(code string) ([]byte, error) {
	campaign, student, err := s.Store.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if campaign.Template == nil {
		return nil, apperrors.NewTemplateNotConfigured(campaign.ID)
	}

	t := campaign.Template
	fontPath, err := s.Fonts.Resolve(t.FontFamily)
	if err != nil {
		return nil, err
	}

	return s.Renderer.Render(render.Params{
		AssetPath: t.CertificatePath,
		Text:      student.Name,
		X:         float64(t.X),
		Y:         float64(t.Y),
		FontSize:  float64(t.FontSize),
		FontPath:  fontPath,
	})
}
