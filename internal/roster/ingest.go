package roster

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/certavo/certavo-backend/internal/apperrors"
	"github.com/certavo/certavo-backend/internal/codegen"
	"github.com/certavo/certavo-backend/internal/model"
	"github.com/certavo/certavo-backend/internal/store"
)

// Header spellings accepted after trimming and lowercasing. The Spanish
// forms are what the rosters in the field actually use.
var (
	nameHeaders  = map[string]bool{"nombre": true, "nombres": true, "name": true}
	emailHeaders = map[string]bool{"correo": true, "correos": true, "email": true}
)

// Ingestor parses uploaded spreadsheets into students with fresh codes.
type Ingestor struct {
	Store store.Store
}

// Ingest reads the first sheet of an XLSX workbook, appends one student per
// row and returns how many were added. Nothing is appended unless the whole
// file parses, so a malformed roster never half-applies.
func (i Ingestor) Ingest(campaignID string, file io.Reader) (int, error) {
	campaign, err := i.Store.Get(campaignID)
	if err != nil {
		return 0, err
	}

	wb, err := excelize.OpenReader(file)
	if err != nil {
		return 0, apperrors.NewInvalidRoster("cannot read workbook: " + err.Error())
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return 0, apperrors.NewInvalidRoster("workbook has no sheets")
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return 0, apperrors.NewInvalidRoster("cannot read rows: " + err.Error())
	}
	if len(rows) == 0 {
		return 0, apperrors.NewInvalidRoster("workbook has no header row")
	}

	nameCol, emailCol := -1, -1
	for idx, header := range rows[0] {
		h := strings.ToLower(strings.TrimSpace(header))
		if nameHeaders[h] && nameCol < 0 {
			nameCol = idx
		}
		if emailHeaders[h] && emailCol < 0 {
			emailCol = idx
		}
	}
	if nameCol < 0 || emailCol < 0 {
		return 0, apperrors.NewInvalidRoster("file must contain a 'nombre'/'name' column and a 'correo'/'email' column")
	}

	existing := make(map[string]struct{}, len(campaign.Students))
	for _, st := range campaign.Students {
		existing[st.Code] = struct{}{}
	}

	students := []model.Student{}
	for _, row := range rows[1:] {
		name := cell(row, nameCol)
		email := cell(row, emailCol)
		if name == "" && email == "" {
			continue
		}

		code, err := codegen.Generate(existing)
		if err != nil {
			return 0, err
		}
		existing[code] = struct{}{}
		students = append(students, model.Student{Name: name, Email: email, Code: code})
	}

	if err := i.Store.AppendStudents(campaignID, students); err != nil {
		return 0, err
	}
	return len(students), nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
