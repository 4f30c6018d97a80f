package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/certavo/certavo-backend/internal/apperrors"
	"github.com/certavo/certavo-backend/internal/model"
)

// PostgresStore is the durable substitution for MemoryStore behind the same
// interface. Selected with STORE_DRIVER=postgres; required when dispatch
// runs in a separate worker process.
type PostgresStore struct {
	DB *sql.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresStore{DB: db}, nil
}

// EnsureSchema creates the tables if they are absent.
func (s *PostgresStore) EnsureSchema() error {
	schema := `
        CREATE TABLE IF NOT EXISTS campaigns (
            id TEXT PRIMARY KEY,
            email_message TEXT NOT NULL DEFAULT '',
            template_x INT,
            template_y INT,
            font_size INT,
            font_family TEXT,
            certificate_path TEXT,
            dispatch_total INT,
            dispatch_sent INT,
            dispatch_failed INT,
            dispatch_completed_at TIMESTAMPTZ
        );
        CREATE TABLE IF NOT EXISTS students (
            id SERIAL PRIMARY KEY,
            campaign_id TEXT NOT NULL REFERENCES campaigns(id),
            name TEXT NOT NULL,
            email TEXT NOT NULL,
            code TEXT NOT NULL,
            UNIQUE (campaign_id, code)
        );
    `
	_, err := s.DB.Exec(schema)
	return err
}

func (s *PostgresStore) Create() (string, error) {
	id := uuid.NewString()
	_, err := s.DB.Exec(`INSERT INTO campaigns (id) VALUES ($1)`, id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *PostgresStore) Get(id string) (*model.Campaign, error) {
	query := `
        SELECT id, email_message, template_x, template_y, font_size, font_family, certificate_path,
               dispatch_total, dispatch_sent, dispatch_failed, dispatch_completed_at
        FROM campaigns WHERE id = $1
    `
	var c model.Campaign
	var x, y, size sql.NullInt64
	var family, path sql.NullString
	var total, sent, failed sql.NullInt64
	var completedAt sql.NullTime
	err := s.DB.QueryRow(query, id).Scan(
		&c.ID, &c.EmailMessage, &x, &y, &size, &family, &path,
		&total, &sent, &failed, &completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewCampaignNotFound(id)
	}
	if err != nil {
		return nil, err
	}

	if family.Valid {
		c.Template = &model.TemplateDetails{
			X:               int(x.Int64),
			Y:               int(y.Int64),
			FontSize:        int(size.Int64),
			FontFamily:      family.String,
			CertificatePath: path.String,
		}
	}
	if completedAt.Valid {
		c.LastDispatch = &model.DispatchReport{
			Total:       int(total.Int64),
			Sent:        int(sent.Int64),
			Failed:      int(failed.Int64),
			CompletedAt: completedAt.Time,
		}
	}

	c.Students, err = s.studentsOf(id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) studentsOf(campaignID string) ([]model.Student, error) {
	rows, err := s.DB.Query(
		`SELECT name, email, code FROM students WHERE campaign_id = $1 ORDER BY id`,
		campaignID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var st model.Student
		if err := rows.Scan(&st.Name, &st.Email, &st.Code); err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

func (s *PostgresStore) SetTemplate(id string, t model.TemplateDetails) error {
	query := `
        UPDATE campaigns
        SET template_x=$1, template_y=$2, font_size=$3, font_family=$4, certificate_path=$5
        WHERE id=$6
    `
	res, err := s.DB.Exec(query, t.X, t.Y, t.FontSize, t.FontFamily, t.CertificatePath, id)
	return requireRow(res, err, id)
}

func (s *PostgresStore) AppendStudents(id string, students []model.Student) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM campaigns WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return apperrors.NewCampaignNotFound(id)
	}

	for _, st := range students {
		_, err := tx.Exec(
			`INSERT INTO students (campaign_id, name, email, code) VALUES ($1, $2, $3, $4)`,
			id, st.Name, st.Email, st.Code,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) SetMessage(id, message string) error {
	res, err := s.DB.Exec(`UPDATE campaigns SET email_message=$1 WHERE id=$2`, message, id)
	return requireRow(res, err, id)
}

func (s *PostgresStore) SetDispatchReport(id string, r model.DispatchReport) error {
	query := `
        UPDATE campaigns
        SET dispatch_total=$1, dispatch_sent=$2, dispatch_failed=$3, dispatch_completed_at=$4
        WHERE id=$5
    `
	res, err := s.DB.Exec(query, r.Total, r.Sent, r.Failed, r.CompletedAt, id)
	return requireRow(res, err, id)
}

func (s *PostgresStore) FindByCode(code string) (*model.Campaign, *model.Student, error) {
	var campaignID string
	err := s.DB.QueryRow(
		`SELECT campaign_id FROM students WHERE code = $1 ORDER BY campaign_id LIMIT 1`,
		code,
	).Scan(&campaignID)
	if err == sql.ErrNoRows {
		return nil, nil, apperrors.NewCodeNotFound(code)
	}
	if err != nil {
		return nil, nil, err
	}

	c, err := s.Get(campaignID)
	if err != nil {
		return nil, nil, err
	}
	for i := range c.Students {
		if c.Students[i].Code == code {
			return c, &c.Students[i], nil
		}
	}
	return nil, nil, apperrors.NewCodeNotFound(code)
}

func requireRow(res sql.Result, err error, id string) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NewCampaignNotFound(id)
	}
	return nil
}
