// Package domain はsocialフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrPostNotFound は投稿が存在しない場合に返されます。
	// 投稿者以外による変更・削除でも同じエラーになり、区別できません。
	ErrPostNotFound = errors.New("post not found")

	// ErrCommentNotFound はコメントが存在しない場合に返されます。
	// コメント投稿者以外による削除でも同じエラーになります。
	ErrCommentNotFound = errors.New("comment not found")
)
