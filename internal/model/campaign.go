package model

import "time"

type Campaign struct {
	ID           string           `json:"id"`
	Template     *TemplateDetails `json:"template_details,omitempty"`
	Students     []Student        `json:"students"`
	EmailMessage string           `json:"email_message,omitempty"`
	LastDispatch *DispatchReport  `json:"last_dispatch,omitempty"`
}

// DispatchReport summarizes the most recent email dispatch of a campaign.
type DispatchReport struct {
	Total       int       `db:"total" json:"total"`
	Sent        int       `db:"sent" json:"sent"`
	Failed      int       `db:"failed" json:"failed"`
	CompletedAt time.Time `db:"completed_at" json:"completed_at"`
}
