// Package middleware は認証サブジェクトを内部ユーザーに解決するミドルウェアを提供します。
package middleware

import (
	"context"
	"net/http"

	"capitalpulse_backend/internal/feature/users/domain/entity"
	jwtmw "capitalpulse_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextUserID はginコンテキストに格納される内部ユーザーIDのキーです。
const ContextUserID = "authUserID"

// SubjectResolver はトークンのsubを内部ユーザーに解決します。
// 初回アクセス時はユーザーレコードを作成します。
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, subjectID string) (*entity.User, error)
}

// Identity はJWT検証済みのサブジェクトを内部ユーザーIDに変換し、
// コンテキストに設定するミドルウェアを返します。
// jwtmw.AuthRequired() の後段に配置する必要があります。
func Identity(resolver SubjectResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, ok := c.Get(jwtmw.ContextSubject)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		user, err := resolver.ResolveSubject(c.Request.Context(), subject.(string))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Next()
	}
}

// UserIDFromContext はコンテキストから内部ユーザーIDを取り出します。
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
