// Package domain はusersフィーチャーのドメインエラーを定義します。
package domain

import "errors"

// ErrUserNotFound はユーザーが存在しない場合に返されます。
var ErrUserNotFound = errors.New("user not found")
