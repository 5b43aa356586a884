package model

import "time"

// User is both the account record and the identity token: the name column is
// what the api-key header carries.
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(64);uniqueIndex:ux_user_name;not null"`
	Password  string    `json:"-" gorm:"type:varchar(128)"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string { return "users" }

// UserRef is the embedded {id, name} shape used by follow listings, profiles
// and feed enrichment.
type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (u *User) Ref() UserRef { return UserRef{ID: u.ID, Name: u.Name} }
