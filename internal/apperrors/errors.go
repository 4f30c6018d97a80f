package apperrors

import "fmt"

// ErrCampaignNotFound is returned when a campaign id resolves to nothing.
type ErrCampaignNotFound struct {
	CampaignID string
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign %s not found", e.CampaignID)
}

func NewCampaignNotFound(id string) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

// ErrCodeNotFound is returned when no student in any campaign holds a code.
type ErrCodeNotFound struct {
	Code string
}

func (e *ErrCodeNotFound) Error() string {
	return fmt.Sprintf("no certificate found for code %s", e.Code)
}

func NewCodeNotFound(code string) error {
	return &ErrCodeNotFound{Code: code}
}

// ErrFontNotFound is returned when no file in the fonts directory matches
// the requested family.
type ErrFontNotFound struct {
	Family string
}

func (e *ErrFontNotFound) Error() string {
	return fmt.Sprintf("no font file matches family %q", e.Family)
}

func NewFontNotFound(family string) error {
	return &ErrFontNotFound{Family: family}
}

// ErrFontsDirMissing is returned when the fonts directory cannot be listed.
type ErrFontsDirMissing struct {
	Dir string
}

func (e *ErrFontsDirMissing) Error() string {
	return fmt.Sprintf("fonts directory %s does not exist", e.Dir)
}

func NewFontsDirMissing(dir string) error {
	return &ErrFontsDirMissing{Dir: dir}
}

// ErrInvalidRoster is returned when an uploaded spreadsheet cannot be parsed
// or lacks the required columns.
type ErrInvalidRoster struct {
	Reason string
}

func (e *ErrInvalidRoster) Error() string {
	return "invalid roster file: " + e.Reason
}

func NewInvalidRoster(reason string) error {
	return &ErrInvalidRoster{Reason: reason}
}

// ErrUnsupportedFormat is returned for certificate assets whose extension
// is neither a supported raster image nor a PDF.
type ErrUnsupportedFormat struct {
	Ext string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported certificate format %q", e.Ext)
}

func NewUnsupportedFormat(ext string) error {
	return &ErrUnsupportedFormat{Ext: ext}
}

// ErrNoStudents is returned when a campaign is activated without students.
type ErrNoStudents struct {
	CampaignID string
}

func (e *ErrNoStudents) Error() string {
	return fmt.Sprintf("campaign %s has no students", e.CampaignID)
}

func NewNoStudents(id string) error {
	return &ErrNoStudents{CampaignID: id}
}

// ErrNoMessageConfigured is returned when a campaign is activated without an
// email message template.
type ErrNoMessageConfigured struct {
	CampaignID string
}

func (e *ErrNoMessageConfigured) Error() string {
	return fmt.Sprintf("campaign %s has no email message configured", e.CampaignID)
}

func NewNoMessageConfigured(id string) error {
	return &ErrNoMessageConfigured{CampaignID: id}
}

// ErrTemplateNotConfigured is returned when a certificate is requested for a
// campaign that has no template details yet.
type ErrTemplateNotConfigured struct {
	CampaignID string
}

func (e *ErrTemplateNotConfigured) Error() string {
	return fmt.Sprintf("campaign %s has no certificate template configured", e.CampaignID)
}

func NewTemplateNotConfigured(id string) error {
	return &ErrTemplateNotConfigured{CampaignID: id}
}

// ErrCodeSpaceExhausted is returned if code generation keeps colliding past
// its retry cap. With 8-character codes this does not happen in practice.
type ErrCodeSpaceExhausted struct {
	Attempts int
}

func (e *ErrCodeSpaceExhausted) Error() string {
	return fmt.Sprintf("could not generate a unique code after %d attempts", e.Attempts)
}

func NewCodeSpaceExhausted(attempts int) error {
	return &ErrCodeSpaceExhausted{Attempts: attempts}
}
