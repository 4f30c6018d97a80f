package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/certavo/certavo-backend/internal/apperrors"
	"github.com/certavo/certavo-backend/internal/roster"
	"github.com/certavo/certavo-backend/internal/service"
)

// Extensions accepted for uploaded certificate templates. The renderer
// guards again at render time.
var allowedAssetExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".pdf":  true,
}

type CampaignController struct {
	Service *service.CampaignService
	Roster  roster.Ingestor
	Log     zerolog.Logger
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := c.Service.CreateCampaign()
	if err != nil {
		c.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"campaign_id": id})
}

func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	campaign, err := c.Service.GetCampaign(id)
	if err != nil {
		c.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":               campaign.ID,
		"template_details": campaign.Template,
		"student_count":    len(campaign.Students),
		"students":         campaign.Students,
		"email_message":    campaign.EmailMessage,
		"last_dispatch":    campaign.LastDispatch,
	})
}

func (c *CampaignController) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	x, err := strconv.Atoi(r.FormValue("x"))
	if err != nil {
		http.Error(w, "invalid x", http.StatusBadRequest)
		return
	}
	y, err := strconv.Atoi(r.FormValue("y"))
	if err != nil {
		http.Error(w, "invalid y", http.StatusBadRequest)
		return
	}
	fontSize, err := strconv.Atoi(r.FormValue("font_size"))
	if err != nil {
		http.Error(w, "invalid font_size", http.StatusBadRequest)
		return
	}
	fontFamily := strings.TrimSpace(r.FormValue("font_family"))
	if fontFamily == "" {
		http.Error(w, "font_family is required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("certificate")
	if err != nil {
		http.Error(w, "certificate file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedAssetExts[ext] {
		c.respondError(w, apperrors.NewUnsupportedFormat(ext))
		return
	}

	if err := c.Service.UpdateTemplate(id, x, y, fontSize, fontFamily, header.Filename, file); err != nil {
		c.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Plantilla de la campaña actualizada correctamente.",
	})
}

func (c *CampaignController) UpdateStudents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	file, _, err := r.FormFile("students_file")
	if err != nil {
		http.Error(w, "students_file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	count, err := c.Roster.Ingest(id, file)
	if err != nil {
		c.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":         fmt.Sprintf("Se procesaron y añadieron %d estudiantes.", count),
		"processed_count": count,
	})
}

func (c *CampaignController) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if utf8.RuneCountInString(body.Message) < 10 {
		http.Error(w, "message must be at least 10 characters", http.StatusBadRequest)
		return
	}

	if err := c.Service.UpdateMessage(id, body.Message); err != nil {
		c.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Mensaje de la campaña actualizado correctamente.",
	})
}

func (c *CampaignController) Activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		FixedURL string `json:"fixed_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.FixedURL) == "" {
		http.Error(w, "fixed_url is required", http.StatusBadRequest)
		return
	}

	if err := c.Service.Activate(id, body.FixedURL); err != nil {
		c.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"message": "Campaña activada. El envío de correos se está procesando en segundo plano.",
	})
}

func (c *CampaignController) CertificateByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	pdf, err := c.Service.CertificateByCode(code)
	if err != nil {
		c.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="certificate.pdf"`)
	w.Write(pdf)
}

// respondError translates the typed service errors into HTTP statuses.
func (c *CampaignController) respondError(w http.ResponseWriter, err error) {
	var (
		campaignNotFound *apperrors.ErrCampaignNotFound
		codeNotFound     *apperrors.ErrCodeNotFound
		fontNotFound     *apperrors.ErrFontNotFound
		fontsDirMissing  *apperrors.ErrFontsDirMissing
		invalidRoster    *apperrors.ErrInvalidRoster
		unsupported      *apperrors.ErrUnsupportedFormat
		noStudents       *apperrors.ErrNoStudents
		noMessage        *apperrors.ErrNoMessageConfigured
		noTemplate       *apperrors.ErrTemplateNotConfigured
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &campaignNotFound), errors.As(err, &codeNotFound):
		status = http.StatusNotFound
	case errors.As(err, &fontNotFound), errors.As(err, &fontsDirMissing):
		status = http.StatusNotFound
	case errors.As(err, &invalidRoster), errors.As(err, &unsupported):
		status = http.StatusBadRequest
	case errors.As(err, &noStudents), errors.As(err, &noMessage), errors.As(err, &noTemplate):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		c.Log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
