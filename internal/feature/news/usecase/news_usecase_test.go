package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"capitalpulse_backend/internal/feature/news/domain/entity"
	"capitalpulse_backend/internal/feature/news/usecase"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockArticleRepository はArticleRepositoryインターフェースのモック実装です。
type mockArticleRepository struct {
	FindBySymbolsFunc func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error)
	ExistingIDsFunc   func(ctx context.Context, ids []string) ([]string, error)
	InsertBatchFunc   func(ctx context.Context, articles []entity.NewsArticle) error

	insertCalls [][]entity.NewsArticle
}

func (m *mockArticleRepository) FindBySymbols(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
	if m.FindBySymbolsFunc != nil {
		return m.FindBySymbolsFunc(ctx, symbols)
	}
	return nil, nil
}

func (m *mockArticleRepository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	if m.ExistingIDsFunc != nil {
		return m.ExistingIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockArticleRepository) InsertBatch(ctx context.Context, articles []entity.NewsArticle) error {
	m.insertCalls = append(m.insertCalls, articles)
	if m.InsertBatchFunc != nil {
		return m.InsertBatchFunc(ctx, articles)
	}
	return nil
}

// mockNewsProvider はNewsProviderインターフェースのモック実装です。
type mockNewsProvider struct {
	FetchBySymbolsFunc func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error)

	calls int
}

func (m *mockNewsProvider) FetchBySymbols(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
	m.calls++
	if m.FetchBySymbolsFunc != nil {
		return m.FetchBySymbolsFunc(ctx, symbols)
	}
	return nil, nil
}

// article はテスト用記事を組み立てるヘルパーです。
func article(id, symbol string, publishedAt time.Time) entity.NewsArticle {
	return entity.NewsArticle{
		ID:          id,
		Title:       "title " + id,
		URL:         "https://example.com/" + id,
		Language:    "en",
		PublishedAt: publishedAt,
		Entities: []entity.NewsArticleEntity{
			{Symbol: symbol, Name: symbol + " Inc."},
		},
	}
}

func newUsecase(repo *mockArticleRepository, provider *mockNewsProvider) *usecase.NewsUsecase {
	return usecase.NewNewsUsecase(repo, provider, zerolog.Nop())
}

// TestNewsUsecase_FreshStoredArticles_SkipsProvider はフレッシュな記事が1件でも
// あれば上流プロバイダーを一切呼ばないことを検証します。
func TestNewsUsecase_FreshStoredArticles_SkipsProvider(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	stored := []entity.NewsArticle{
		article("a-1", "NVDA", now.Add(-1*time.Hour)),
		article("a-2", "NVDA", now.Add(-30*time.Hour)),
	}

	repo := &mockArticleRepository{
		FindBySymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
			return stored, nil
		},
	}
	provider := &mockNewsProvider{}

	got, err := newUsecase(repo, provider).GetNewsBySymbol(context.Background(), "NVDA")

	require.NoError(t, err)
	assert.Equal(t, stored, got)
	assert.Zero(t, provider.calls, "provider must not be called when a fresh article exists")
	assert.Empty(t, repo.insertCalls)
}

// TestNewsUsecase_StaleStore_FetchesAndMerges は全記事が6時間より古い場合に
// 上流をちょうど1回呼び、未知の記事のみ永続化してマージ結果を返すことを検証します。
// 上流が既存記事と同じIDを返すケース（スペックの NVDA シナリオ）を含みます。
func TestNewsUsecase_StaleStore_FetchesAndMerges(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	old := article("old-1", "NVDA", now.Add(-7*time.Hour))
	dup := article("old-1", "NVDA", now.Add(-7*time.Hour))
	brand := article("new-1", "NVDA", now.Add(-10*time.Minute))

	repo := &mockArticleRepository{
		FindBySymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
			return []entity.NewsArticle{old}, nil
		},
		ExistingIDsFunc: func(ctx context.Context, ids []string) ([]string, error) {
			assert.ElementsMatch(t, []string{"old-1", "new-1"}, ids)
			return []string{"old-1"}, nil
		},
	}
	provider := &mockNewsProvider{
		FetchBySymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
			assert.Equal(t, []string{"NVDA"}, symbols)
			return []entity.NewsArticle{dup, brand}, nil
		},
	}

	got, err := newUsecase(repo, provider).GetNewsBySymbol(context.Background(), "NVDA")

	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls, "provider must be called exactly once")

	// 既知のIDは保存されない
	require.Len(t, repo.insertCalls, 1)
	require.Len(t, repo.insertCalls[0], 1)
	assert.Equal(t, "new-1", repo.insertCalls[0][0].ID)

	// 1件（既存）+ 1件（本当に新しいもの）、新しい順
	require.Len(t, got, 2)
	assert.Equal(t, "new-1", got[0].ID)
	assert.Equal(t, "old-1", got[1].ID)
}

// TestNewsUsecase_EmptyStore_FetchesUpstream はストアが空の場合も上流を呼ぶことを検証します。
func TestNewsUsecase_EmptyStore_FetchesUpstream(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	repo := &mockArticleRepository{}
	provider := &mockNewsProvider{
		FetchBySymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
			return []entity.NewsArticle{article("n-1", "AAPL", now.Add(-time.Hour))}, nil
		},
	}

	got, err := newUsecase(repo, provider).GetNewsBySymbol(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	require.Len(t, got, 1)
	assert.Equal(t, "n-1", got[0].ID)
}

// TestNewsUsecase_ProviderFailure_FailsSoft は上流障害時にエラーを伝播せず、
// ストアの内容のみを返すことを検証します。
func TestNewsUsecase_ProviderFailure_FailsSoft(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	tests := []struct {
		name     string
		stored   []entity.NewsArticle
		expected int
	}{
		{
			name:     "stale articles are still served",
			stored:   []entity.NewsArticle{article("s-1", "TSLA", now.Add(-8*time.Hour))},
			expected: 1,
		},
		{
			name:     "empty store yields empty result, not an error",
			stored:   nil,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockArticleRepository{
				FindBySymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
					return tt.stored, nil
				},
			}
			provider := &mockNewsProvider{
				FetchBySymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
					return nil, errors.New("upstream unreachable")
				},
			}

			got, err := newUsecase(repo, provider).GetNewsBySymbol(context.Background(), "TSLA")

			require.NoError(t, err)
			assert.Len(t, got, tt.expected)
			assert.Empty(t, repo.insertCalls)
		})
	}
}

// TestNewsUsecase_StoreFailure_IsFatal はストア障害が呼び出し元へ伝播することを検証します。
func TestNewsUsecase_StoreFailure_IsFatal(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("store unreachable")
	repo := &mockArticleRepository{
		FindBySymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
			return nil, storeErr
		},
	}

	got, err := newUsecase(repo, &mockNewsProvider{}).GetNewsBySymbol(context.Background(), "NVDA")

	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, got)
}

// TestNewsUsecase_InsertFailure_IsFatal は新規記事の永続化失敗が伝播することを検証します。
func TestNewsUsecase_InsertFailure_IsFatal(t *testing.T) {
	t.Parallel()

	insertErr := errors.New("insert failed")
	now := time.Now().UTC()
	repo := &mockArticleRepository{
		InsertBatchFunc: func(ctx context.Context, articles []entity.NewsArticle) error {
			return insertErr
		},
	}
	provider := &mockNewsProvider{
		FetchBySymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
			return []entity.NewsArticle{article("n-1", "NVDA", now)}, nil
		},
	}

	_, err := newUsecase(repo, provider).GetNewsBySymbol(context.Background(), "NVDA")

	assert.ErrorIs(t, err, insertErr)
}

// TestNewsUsecase_NoNewArticles_SkipsInsert は取得記事が全て既知の場合に
// 書き込みを一切行わないことを検証します。
func TestNewsUsecase_NoNewArticles_SkipsInsert(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	old := article("k-1", "NVDA", now.Add(-9*time.Hour))

	repo := &mockArticleRepository{
		FindBySymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
			return []entity.NewsArticle{old}, nil
		},
		ExistingIDsFunc: func(ctx context.Context, ids []string) ([]string, error) {
			return []string{"k-1"}, nil
		},
	}
	provider := &mockNewsProvider{
		FetchBySymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
			return []entity.NewsArticle{article("k-1", "NVDA", now.Add(-9*time.Hour))}, nil
		},
	}

	got, err := newUsecase(repo, provider).GetNewsBySymbol(context.Background(), "NVDA")

	require.NoError(t, err)
	assert.Empty(t, repo.insertCalls, "empty batches must not be written")
	assert.Len(t, got, 1)
}

// TestNewsUsecase_SecondCallServesFromStore は新規記事を永続化した直後の再呼び出しが
// 追加の上流呼び出しなしで同じ結果を返すことを検証します（冪等性）。
func TestNewsUsecase_SecondCallServesFromStore(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	fresh := article("f-1", "NVDA", now.Add(-30*time.Minute))

	// InsertBatch後の状態を模倣するインメモリストア
	store := []entity.NewsArticle{}
	repo := &mockArticleRepository{
		FindBySymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
			out := make([]entity.NewsArticle, len(store))
			copy(out, store)
			return out, nil
		},
		InsertBatchFunc: func(ctx context.Context, articles []entity.NewsArticle) error {
			store = append(store, articles...)
			return nil
		},
	}
	provider := &mockNewsProvider{
		FetchBySymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
			return []entity.NewsArticle{fresh}, nil
		},
	}

	uc := newUsecase(repo, provider)

	first, err := uc.GetNewsBySymbol(context.Background(), "NVDA")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, provider.calls)

	second, err := uc.GetNewsBySymbol(context.Background(), "NVDA")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls, "second call must be served from the store")
}

// TestNewsUsecase_SymbolNormalization はシンボルの正規化（トリム・大文字化・重複除去）を検証します。
func TestNewsUsecase_SymbolNormalization(t *testing.T) {
	t.Parallel()

	var requested []string
	repo := &mockArticleRepository{
		FindBySymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
			requested = symbols
			return []entity.NewsArticle{article("x-1", "NVDA", time.Now().UTC())}, nil
		},
	}

	_, err := newUsecase(repo, &mockNewsProvider{}).GetNewsBySymbols(
		context.Background(), []string{" nvda ", "NVDA", "aapl", ""})

	require.NoError(t, err)
	assert.Equal(t, []string{"NVDA", "AAPL"}, requested)
}

// TestNewsUsecase_NoSymbols は空入力で空リストを返し、どこへも問い合わせないことを検証します。
func TestNewsUsecase_NoSymbols(t *testing.T) {
	t.Parallel()

	findCalled := false
	repo := &mockArticleRepository{
		FindBySymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
			findCalled = true
			return nil, nil
		},
	}
	provider := &mockNewsProvider{}

	got, err := newUsecase(repo, provider).GetNewsBySymbols(context.Background(), []string{"", "  "})

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, findCalled)
	assert.Zero(t, provider.calls)
}

// TestNewsUsecase_UpstreamTimestampsNormalizedToUTC は上流のタイムスタンプが
// 保存前にUTCへ変換されることを検証します。
func TestNewsUsecase_UpstreamTimestampsNormalizedToUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("JST", 9*60*60)
	local := time.Date(2026, 8, 30, 10, 0, 0, 0, loc)

	repo := &mockArticleRepository{}
	provider := &mockNewsProvider{
		FetchBySymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
			return []entity.NewsArticle{article("tz-1", "NVDA", local)}, nil
		},
	}

	_, err := newUsecase(repo, provider).GetNewsBySymbol(context.Background(), "NVDA")

	require.NoError(t, err)
	require.Len(t, repo.insertCalls, 1)
	saved := repo.insertCalls[0][0]
	assert.Equal(t, time.UTC, saved.PublishedAt.Location())
	assert.True(t, saved.PublishedAt.Equal(local))
}
