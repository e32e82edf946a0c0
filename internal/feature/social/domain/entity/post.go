// Package entity はsocialフィーチャーのドメインエンティティを定義します。
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Post は銘柄に紐づく投稿です。
type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Ticker    string    `gorm:"index;size:20"`
	Title     string
	Body      string    `gorm:"type:text"`
	AuthorID  uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// TableName はGORMで使用するテーブル名を返します。
func (Post) TableName() string { return "posts" }

// Comment は投稿に対するコメントです。
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PostID    uuid.UUID `gorm:"type:uuid;index"`
	AuthorID  uuid.UUID `gorm:"type:uuid"`
	Body      string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName はGORMで使用するテーブル名を返します。
func (Comment) TableName() string { return "comments" }
