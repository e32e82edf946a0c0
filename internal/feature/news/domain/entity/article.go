// Package entity defines the domain models for the news feature.
package entity

import "time"

// NewsArticle はニュース記事を表します。IDは上流プロバイダー（Marketaux）が
// 発行するUUID文字列をそのまま主キーとして使用します。
type NewsArticle struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Title       string    `gorm:"size:512;not null"`
	Description string    `gorm:"type:text"`
	URL         string    `gorm:"size:2048"`
	Language    string    `gorm:"size:8"`
	PublishedAt time.Time `gorm:"not null;index"`

	// 記事にマッチした金融エンティティ。記事が排他的に所有し、削除時にカスケードされます。
	Entities []NewsArticleEntity `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
}

// TableName はNewsArticleのテーブル名を指定します。
func (NewsArticle) TableName() string {
	return "news_articles"
}

// NewsArticleEntity は記事にマッチした1つの金融エンティティ（企業・銘柄）です。
type NewsArticleEntity struct {
	ID        uint   `gorm:"primaryKey"`
	ArticleID string `gorm:"size:64;not null;index"`
	Symbol    string `gorm:"size:20;not null;index"`
	Name      string `gorm:"size:255"`
	Country   string `gorm:"size:8"`
	Industry  string `gorm:"size:128"`
}

// TableName はNewsArticleEntityのテーブル名を指定します。
func (NewsArticleEntity) TableName() string {
	return "news_article_entities"
}
