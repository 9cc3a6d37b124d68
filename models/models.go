package models

import "github.com/jinzhu/gorm"

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Posts        []Post `gorm:"foreignkey:UserID"`
}

type Post struct {
	gorm.Model
	Title    string    `gorm:"not null"`
	Content  string    `gorm:"type:text;not null"`
	Views    int       `gorm:"default:0"`
	UserID   uint      `gorm:"index;not null"`
	Author   User      `gorm:"foreignkey:UserID"`
	Comments []Comment `gorm:"foreignkey:PostID"`
}

// Comment is left by a visitor, no account required.
type Comment struct {
	gorm.Model
	Content     string `gorm:"type:text;not null"`
	DisplayName string `gorm:"not null"`
	Email       string `gorm:"not null"`
	PostID      uint   `gorm:"index;not null"`
}
