package model

// TemplateDetails holds the text placement parameters and the stored base
// asset of a campaign's certificate template. Coordinates are top-left
// origin with y increasing downward, matching the base asset.
type TemplateDetails struct {
	X               int    `db:"x" json:"x"`
	Y               int    `db:"y" json:"y"`
	FontSize        int    `db:"font_size" json:"font_size"`
	FontFamily      string `db:"font_family" json:"font_family"`
	CertificatePath string `db:"certificate_path" json:"certificate_path"`
}
