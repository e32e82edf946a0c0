// Package dto はnewsフィーチャーのHTTPレスポンス構造を定義します。
package dto

import "time"

// NewsArticleResponse は1記事のAPIレスポンスです。
type NewsArticleResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	URL         string               `json:"url"`
	Language    string               `json:"language"`
	PublishedAt time.Time            `json:"publishedAt"`
	Entities    []NewsEntityResponse `json:"entities"`
}

// NewsEntityResponse は記事にマッチした金融エンティティのレスポンスです。
type NewsEntityResponse struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Industry string `json:"industry"`
}
