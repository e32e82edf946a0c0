// Package entity はusersフィーチャーのドメインエンティティを定義します。
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User は認証プロバイダのサブジェクトに紐づく内部ユーザーです。
// 初回アクセス時に遅延作成されます。
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubjectID string    `gorm:"uniqueIndex;size:255"`
	Email     string
	Username  string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName はGORMで使用するテーブル名を返します。
func (User) TableName() string { return "users" }
