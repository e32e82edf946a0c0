package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"capitalpulse_backend/internal/feature/watchlist/domain"
	"capitalpulse_backend/internal/feature/watchlist/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWatchlistRepo はWatchlistRepositoryのモック実装です。
type mockWatchlistRepo struct {
	FindByUserFunc   func(ctx context.Context, userID uuid.UUID) ([]entity.Watchlist, error)
	FindByIDFunc     func(ctx context.Context, id, userID uuid.UUID) (*entity.Watchlist, error)
	NameExistsFunc   func(ctx context.Context, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
	CreateFunc       func(ctx context.Context, w *entity.Watchlist) error
	UpdateFunc       func(ctx context.Context, w *entity.Watchlist) error
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
	EnsureTickerFunc func(ctx context.Context, t *entity.Ticker) error
	AddTickerFunc    func(ctx context.Context, watchlistID uuid.UUID, symbol string) error
	RemoveTickerFunc func(ctx context.Context, watchlistID uuid.UUID, symbol string) error
	TopTickersFunc   func(ctx context.Context, userID uuid.UUID, n int) ([]entity.TickerCount, error)
}

func (m *mockWatchlistRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]entity.Watchlist, error) {
	return m.FindByUserFunc(ctx, userID)
}
func (m *mockWatchlistRepo) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Watchlist, error) {
	return m.FindByIDFunc(ctx, id, userID)
}
func (m *mockWatchlistRepo) NameExists(ctx context.Context, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	return m.NameExistsFunc(ctx, userID, name, excludeID)
}
func (m *mockWatchlistRepo) Create(ctx context.Context, w *entity.Watchlist) error {
	return m.CreateFunc(ctx, w)
}
func (m *mockWatchlistRepo) Update(ctx context.Context, w *entity.Watchlist) error {
	return m.UpdateFunc(ctx, w)
}
func (m *mockWatchlistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockWatchlistRepo) EnsureTicker(ctx context.Context, t *entity.Ticker) error {
	return m.EnsureTickerFunc(ctx, t)
}
func (m *mockWatchlistRepo) AddTicker(ctx context.Context, watchlistID uuid.UUID, symbol string) error {
	return m.AddTickerFunc(ctx, watchlistID, symbol)
}
func (m *mockWatchlistRepo) RemoveTicker(ctx context.Context, watchlistID uuid.UUID, symbol string) error {
	return m.RemoveTickerFunc(ctx, watchlistID, symbol)
}
func (m *mockWatchlistRepo) TopTickers(ctx context.Context, userID uuid.UUID, n int) ([]entity.TickerCount, error) {
	return m.TopTickersFunc(ctx, userID, n)
}

var _ WatchlistRepository = (*mockWatchlistRepo)(nil)

// TestWatchlistUsecase_Create は作成時の名前重複チェックを検証します。
func TestWatchlistUsecase_Create(t *testing.T) {
	userID := uuid.New()

	t.Run("success: trims the name and persists", func(t *testing.T) {
		var created *entity.Watchlist
		repo := &mockWatchlistRepo{
			NameExistsFunc: func(ctx context.Context, uid uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
				assert.Equal(t, userID, uid)
				assert.Equal(t, "Tech", name)
				assert.Equal(t, uuid.Nil, excludeID)
				return false, nil
			},
			CreateFunc: func(ctx context.Context, w *entity.Watchlist) error {
				created = w
				return nil
			},
		}
		uc := NewWatchlistUsecase(repo)

		w, err := uc.Create(context.Background(), userID, "  Tech  ")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "Tech", w.Name)
		assert.Equal(t, userID, w.UserID)
		assert.NotEqual(t, uuid.Nil, w.ID)
		assert.False(t, w.CreatedAt.IsZero())
	})

	t.Run("failure: duplicate name", func(t *testing.T) {
		repo := &mockWatchlistRepo{
			NameExistsFunc: func(ctx context.Context, uid uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
				return true, nil
			},
			CreateFunc: func(ctx context.Context, w *entity.Watchlist) error {
				t.Fatal("Create should not be called")
				return nil
			},
		}
		uc := NewWatchlistUsecase(repo)

		_, err := uc.Create(context.Background(), userID, "Tech")
		assert.ErrorIs(t, err, domain.ErrDuplicateName)
	})

	t.Run("failure: repository error propagates", func(t *testing.T) {
		repo := &mockWatchlistRepo{
			NameExistsFunc: func(ctx context.Context, uid uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
				return false, errors.New("db down")
			},
		}
		uc := NewWatchlistUsecase(repo)

		_, err := uc.Create(context.Background(), userID, "Tech")
		assert.Error(t, err)
	})
}

// TestWatchlistUsecase_Rename は改名時の所有権と重複チェックを検証します。
func TestWatchlistUsecase_Rename(t *testing.T) {
	userID := uuid.New()
	listID := uuid.New()

	t.Run("success: excludes itself from the duplicate check", func(t *testing.T) {
		var updated *entity.Watchlist
		repo := &mockWatchlistRepo{
			FindByIDFunc: func(ctx context.Context, id, uid uuid.UUID) (*entity.Watchlist, error) {
				return &entity.Watchlist{ID: id, UserID: uid, Name: "Old"}, nil
			},
			NameExistsFunc: func(ctx context.Context, uid uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
				assert.Equal(t, listID, excludeID)
				return false, nil
			},
			UpdateFunc: func(ctx context.Context, w *entity.Watchlist) error {
				updated = w
				return nil
			},
		}
		uc := NewWatchlistUsecase(repo)

		w, err := uc.Rename(context.Background(), listID, userID, "New")
		require.NoError(t, err)
		assert.Equal(t, "New", w.Name)
		require.NotNil(t, updated)
		assert.False(t, updated.UpdatedAt.IsZero())
	})

	t.Run("failure: not found", func(t *testing.T) {
		repo := &mockWatchlistRepo{
			FindByIDFunc: func(ctx context.Context, id, uid uuid.UUID) (*entity.Watchlist, error) {
				return nil, domain.ErrWatchlistNotFound
			},
		}
		uc := NewWatchlistUsecase(repo)

		_, err := uc.Rename(context.Background(), listID, userID, "New")
		assert.ErrorIs(t, err, domain.ErrWatchlistNotFound)
	})

	t.Run("failure: duplicate name", func(t *testing.T) {
		repo := &mockWatchlistRepo{
			FindByIDFunc: func(ctx context.Context, id, uid uuid.UUID) (*entity.Watchlist, error) {
				return &entity.Watchlist{ID: id, UserID: uid, Name: "Old"}, nil
			},
			NameExistsFunc: func(ctx context.Context, uid uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
				return true, nil
			},
		}
		uc := NewWatchlistUsecase(repo)

		_, err := uc.Rename(context.Background(), listID, userID, "Taken")
		assert.ErrorIs(t, err, domain.ErrDuplicateName)
	})
}

// TestWatchlistUsecase_Delete は削除前の所有権チェックを検証します。
func TestWatchlistUsecase_Delete(t *testing.T) {
	userID := uuid.New()
	listID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deleted := false
		repo := &mockWatchlistRepo{
			FindByIDFunc: func(ctx context.Context, id, uid uuid.UUID) (*entity.Watchlist, error) {
				return &entity.Watchlist{ID: id, UserID: uid}, nil
			},
			DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
				assert.Equal(t, listID, id)
				deleted = true
				return nil
			},
		}
		uc := NewWatchlistUsecase(repo)

		require.NoError(t, uc.Delete(context.Background(), listID, userID))
		assert.True(t, deleted)
	})

	t.Run("failure: not owned", func(t *testing.T) {
		repo := &mockWatchlistRepo{
			FindByIDFunc: func(ctx context.Context, id, uid uuid.UUID) (*entity.Watchlist, error) {
				return nil, domain.ErrWatchlistNotFound
			},
			DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
				t.Fatal("Delete should not be called")
				return nil
			},
		}
		uc := NewWatchlistUsecase(repo)

		err := uc.Delete(context.Background(), listID, userID)
		assert.ErrorIs(t, err, domain.ErrWatchlistNotFound)
	})
}

// TestWatchlistUsecase_AddTicker は銘柄追加時の正規化と遅延作成を検証します。
func TestWatchlistUsecase_AddTicker(t *testing.T) {
	userID := uuid.New()
	listID := uuid.New()

	t.Run("success: uppercases the symbol and ensures the ticker", func(t *testing.T) {
		staleUpdatedAt := time.Now().UTC().Add(-24 * time.Hour)

		var ensured *entity.Ticker
		var addedSymbol string
		var updated *entity.Watchlist
		finds := 0
		repo := &mockWatchlistRepo{
			FindByIDFunc: func(ctx context.Context, id, uid uuid.UUID) (*entity.Watchlist, error) {
				finds++
				return &entity.Watchlist{ID: id, UserID: uid, Name: "Tech", UpdatedAt: staleUpdatedAt}, nil
			},
			EnsureTickerFunc: func(ctx context.Context, tk *entity.Ticker) error {
				ensured = tk
				return nil
			},
			AddTickerFunc: func(ctx context.Context, watchlistID uuid.UUID, symbol string) error {
				addedSymbol = symbol
				return nil
			},
			UpdateFunc: func(ctx context.Context, w *entity.Watchlist) error {
				updated = w
				return nil
			},
		}
		uc := NewWatchlistUsecase(repo)

		_, err := uc.AddTicker(context.Background(), listID, userID, " nvda ", "Nvidia Corporation")
		require.NoError(t, err)
		require.NotNil(t, ensured)
		assert.Equal(t, "NVDA", ensured.Symbol)
		assert.Equal(t, "Nvidia Corporation", ensured.StockName)
		assert.Equal(t, "NVDA", addedSymbol)
		// 構成変更でUpdatedAtが進む
		require.NotNil(t, updated)
		assert.True(t, updated.UpdatedAt.After(staleUpdatedAt))
		// 追加後に最新状態を読み直す
		assert.Equal(t, 2, finds)
	})

	t.Run("failure: duplicate ticker", func(t *testing.T) {
		repo := &mockWatchlistRepo{
			FindByIDFunc: func(ctx context.Context, id, uid uuid.UUID) (*entity.Watchlist, error) {
				return &entity.Watchlist{ID: id, UserID: uid}, nil
			},
			EnsureTickerFunc: func(ctx context.Context, tk *entity.Ticker) error { return nil },
			AddTickerFunc: func(ctx context.Context, watchlistID uuid.UUID, symbol string) error {
				return domain.ErrDuplicateTicker
			},
		}
		uc := NewWatchlistUsecase(repo)

		_, err := uc.AddTicker(context.Background(), listID, userID, "NVDA", "Nvidia")
		assert.ErrorIs(t, err, domain.ErrDuplicateTicker)
	})

	t.Run("failure: not owned", func(t *testing.T) {
		repo := &mockWatchlistRepo{
			FindByIDFunc: func(ctx context.Context, id, uid uuid.UUID) (*entity.Watchlist, error) {
				return nil, domain.ErrWatchlistNotFound
			},
		}
		uc := NewWatchlistUsecase(repo)

		_, err := uc.AddTicker(context.Background(), listID, userID, "NVDA", "Nvidia")
		assert.ErrorIs(t, err, domain.ErrWatchlistNotFound)
	})
}

// TestWatchlistUsecase_RemoveTicker は銘柄削除を検証します。
func TestWatchlistUsecase_RemoveTicker(t *testing.T) {
	userID := uuid.New()
	listID := uuid.New()

	t.Run("success: uppercases the symbol and bumps UpdatedAt", func(t *testing.T) {
		staleUpdatedAt := time.Now().UTC().Add(-24 * time.Hour)

		var removed string
		var updated *entity.Watchlist
		repo := &mockWatchlistRepo{
			FindByIDFunc: func(ctx context.Context, id, uid uuid.UUID) (*entity.Watchlist, error) {
				return &entity.Watchlist{ID: id, UserID: uid, UpdatedAt: staleUpdatedAt}, nil
			},
			RemoveTickerFunc: func(ctx context.Context, watchlistID uuid.UUID, symbol string) error {
				removed = symbol
				return nil
			},
			UpdateFunc: func(ctx context.Context, w *entity.Watchlist) error {
				updated = w
				return nil
			},
		}
		uc := NewWatchlistUsecase(repo)

		_, err := uc.RemoveTicker(context.Background(), listID, userID, "nvda")
		require.NoError(t, err)
		assert.Equal(t, "NVDA", removed)
		require.NotNil(t, updated)
		assert.True(t, updated.UpdatedAt.After(staleUpdatedAt))
	})

	t.Run("failure: ticker not in watchlist", func(t *testing.T) {
		repo := &mockWatchlistRepo{
			FindByIDFunc: func(ctx context.Context, id, uid uuid.UUID) (*entity.Watchlist, error) {
				return &entity.Watchlist{ID: id, UserID: uid}, nil
			},
			RemoveTickerFunc: func(ctx context.Context, watchlistID uuid.UUID, symbol string) error {
				return domain.ErrTickerNotInWatchlist
			},
		}
		uc := NewWatchlistUsecase(repo)

		_, err := uc.RemoveTicker(context.Background(), listID, userID, "NVDA")
		assert.ErrorIs(t, err, domain.ErrTickerNotInWatchlist)
	})
}

// TestWatchlistUsecase_TopTickers は件数の既定値とユーザースコープを検証します。
func TestWatchlistUsecase_TopTickers(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name      string
		requested int
		expectedN int
	}{
		{name: "zero falls back to the default", requested: 0, expectedN: DefaultTopN},
		{name: "negative falls back to the default", requested: -5, expectedN: DefaultTopN},
		{name: "explicit value is used as-is", requested: 10, expectedN: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotN int
			var gotUserID uuid.UUID
			repo := &mockWatchlistRepo{
				TopTickersFunc: func(ctx context.Context, uid uuid.UUID, n int) ([]entity.TickerCount, error) {
					gotUserID = uid
					gotN = n
					return []entity.TickerCount{{Symbol: "NVDA", StockName: "Nvidia", Count: 2}}, nil
				},
			}
			uc := NewWatchlistUsecase(repo)

			out, err := uc.TopTickers(context.Background(), userID, tt.requested)
			require.NoError(t, err)
			assert.Equal(t, userID, gotUserID)
			assert.Equal(t, tt.expectedN, gotN)
			assert.Len(t, out, 1)
		})
	}
}
