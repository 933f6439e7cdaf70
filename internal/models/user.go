package models

type User struct {
	ID             int     `db:"id" json:"id"`
	Username       string  `db:"username" json:"username"`
	Email          string  `db:"email" json:"email"`
	HashedPassword string  `db:"hashed_password" json:"-"`
	FullName       *string `db:"full_name" json:"full_name"`
	Disabled       bool    `db:"disabled" json:"disabled"`
}
