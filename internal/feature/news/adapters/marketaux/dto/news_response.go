// Package dto はMarketaux APIのレスポンス構造を定義します。
package dto

// NewsResponse は /v1/news/all のレスポンスボディです。
type NewsResponse struct {
	Data []NewsArticleItem `json:"data"`
	// エラー時のみ設定される
	Error *APIError `json:"error,omitempty"`
}

// APIError はMarketauxのエラーペイロードです。
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewsArticleItem はレスポンス中の1記事です。
type NewsArticleItem struct {
	UUID        string           `json:"uuid"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	URL         string           `json:"url"`
	Language    string           `json:"language"`
	PublishedAt string           `json:"published_at"`
	Entities    []NewsEntityItem `json:"entities"`
}

// NewsEntityItem は記事にマッチした金融エンティティです。
type NewsEntityItem struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Industry string `json:"industry"`
}
