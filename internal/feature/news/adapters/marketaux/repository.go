// Package marketaux provides a client for the Marketaux financial news API.
package marketaux

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"capitalpulse_backend/internal/feature/news/adapters/marketaux/dto"
	"capitalpulse_backend/internal/feature/news/domain/entity"
	"capitalpulse_backend/internal/feature/news/usecase"
)

// Config holds configuration for the Marketaux API client.
type Config struct {
	APIToken string        // API token for authentication
	BaseURL  string        // Base URL (e.g., "https://api.marketaux.com")
	Timeout  time.Duration // HTTP request timeout
}

// MarketauxProvider はMarketaux外部APIからニュース記事を取得するNewsProvider実装です。
type MarketauxProvider struct {
	cfg    Config
	client *http.Client
}

// MarketauxProviderがNewsProviderを実装していることをコンパイル時に検証します。
var _ usecase.NewsProvider = (*MarketauxProvider)(nil)

// NewMarketauxProvider は指定された設定とHTTPクライアントでMarketauxProviderの新しいインスタンスを生成します。
func NewMarketauxProvider(cfg Config, client *http.Client) *MarketauxProvider {
	return &MarketauxProvider{cfg: cfg, client: client}
}

// FetchBySymbols はMarketaux APIから指定シンボル群の記事を取得し、
// entity.NewsArticleのスライスとして返します。
func (m *MarketauxProvider) FetchBySymbols(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("symbols", strings.Join(symbols, ","))
	q.Set("filter_entities", "false")
	q.Set("language", "en")
	q.Set("api_token", m.cfg.APIToken)

	u := fmt.Sprintf("%s/v1/news/all?%s", m.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("marketaux http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.NewsResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Error != nil {
		return nil, fmt.Errorf("marketaux: %s", body.Error.Message)
	}

	articles := make([]entity.NewsArticle, 0, len(body.Data))
	for _, item := range body.Data {
		// タイムスタンプをパース（RFC3339、日付のみのフォールバックあり）
		tm, err := parsePublishedAt(item.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("parse published_at %q: %w", item.PublishedAt, err)
		}

		ents := make([]entity.NewsArticleEntity, 0, len(item.Entities))
		for _, e := range item.Entities {
			ents = append(ents, entity.NewsArticleEntity{
				Symbol:   strings.ToUpper(e.Symbol),
				Name:     e.Name,
				Country:  e.Country,
				Industry: e.Industry,
			})
		}

		// ドメインエンティティに変換（タイムスタンプはUTCに正規化）
		articles = append(articles, entity.NewsArticle{
			ID:          item.UUID,
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			Language:    item.Language,
			PublishedAt: tm.UTC(),
			Entities:    ents,
		})
	}
	return articles, nil
}

// parsePublishedAt はMarketauxのタイムスタンプ表記をパースします。
func parsePublishedAt(s string) (time.Time, error) {
	tm, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return tm, nil
	}
	tm, err2 := time.Parse("2006-01-02 15:04:05", s)
	if err2 == nil {
		return tm, nil
	}
	return time.Time{}, err
}
