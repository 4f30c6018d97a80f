package model

type Student struct {
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Code  string `db:"code" json:"code"`
}
