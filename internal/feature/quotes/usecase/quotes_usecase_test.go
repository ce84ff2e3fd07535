package usecase

import (
	"context"
	"errors"
	"testing"

	"portfolio_backend/internal/feature/quotes/domain/entity"
)

// mockMarketRepository はテスト用のMarketRepositoryモック実装です。
type mockMarketRepository struct {
	GetSeriesFunc func(ctx context.Context, symbol string, timeframe entity.Timeframe) (*entity.Series, error)
}

func (m *mockMarketRepository) GetSeries(ctx context.Context, symbol string, timeframe entity.Timeframe) (*entity.Series, error) {
	if m.GetSeriesFunc != nil {
		return m.GetSeriesFunc(ctx, symbol, timeframe)
	}
	return nil, errors.New("not implemented")
}

// mockQuoteRepository はテスト用のQuoteRepositoryモック実装です。
type mockQuoteRepository struct {
	GetQuoteFunc func(ctx context.Context, symbol string) (entity.Quote, error)
	calls        []string
}

func (m *mockQuoteRepository) GetQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	m.calls = append(m.calls, symbol)
	if m.GetQuoteFunc != nil {
		return m.GetQuoteFunc(ctx, symbol)
	}
	return entity.Quote{}, errors.New("not implemented")
}

func TestQuotesUsecase_GetHistory(t *testing.T) {
	t.Run("valid timeframe is forwarded to the repository", func(t *testing.T) {
		expected := &entity.Series{Symbol: "AAPL"}
		market := &mockMarketRepository{
			GetSeriesFunc: func(ctx context.Context, symbol string, timeframe entity.Timeframe) (*entity.Series, error) {
				if symbol != "AAPL" {
					t.Errorf("unexpected symbol: %q", symbol)
				}
				if timeframe != entity.Timeframe1M {
					t.Errorf("unexpected timeframe: %q", timeframe)
				}
				return expected, nil
			},
		}

		uc := NewQuotesUsecase(market, &mockQuoteRepository{}, NewPriceBook())
		series, err := uc.GetHistory(context.Background(), "AAPL", "1M")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if series != expected {
			t.Error("unexpected series returned")
		}
	})

	t.Run("invalid timeframe is rejected without a provider call", func(t *testing.T) {
		market := &mockMarketRepository{
			GetSeriesFunc: func(ctx context.Context, symbol string, timeframe entity.Timeframe) (*entity.Series, error) {
				t.Error("repository should not be called for invalid timeframe")
				return nil, nil
			},
		}

		uc := NewQuotesUsecase(market, &mockQuoteRepository{}, NewPriceBook())
		_, err := uc.GetHistory(context.Background(), "AAPL", "3Y")

		if err == nil {
			t.Error("expected error for invalid timeframe")
		}
	})

	t.Run("provider error is propagated", func(t *testing.T) {
		expectedErr := errors.New("upstream down")
		market := &mockMarketRepository{
			GetSeriesFunc: func(ctx context.Context, symbol string, timeframe entity.Timeframe) (*entity.Series, error) {
				return nil, expectedErr
			},
		}

		uc := NewQuotesUsecase(market, &mockQuoteRepository{}, NewPriceBook())
		_, err := uc.GetHistory(context.Background(), "AAPL", "1D")

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected %v, got %v", expectedErr, err)
		}
	})
}

func TestQuotesUsecase_CurrentPrices(t *testing.T) {
	t.Run("served entirely from the snapshot", func(t *testing.T) {
		book := NewPriceBook()
		book.Apply(book.Begin(), map[string]entity.Quote{
			"AAPL": {Price: 150.0},
			"MSFT": {Price: 400.0},
		})
		quotes := &mockQuoteRepository{}

		uc := NewQuotesUsecase(&mockMarketRepository{}, quotes, book)
		out := uc.CurrentPrices(context.Background(), []string{"AAPL", "MSFT"})

		if len(out) != 2 {
			t.Fatalf("expected 2 prices, got %d", len(out))
		}
		if len(quotes.calls) != 0 {
			t.Errorf("provider should not be called for cached symbols, got calls: %v", quotes.calls)
		}
	})

	t.Run("missing symbols are fetched on demand", func(t *testing.T) {
		book := NewPriceBook()
		book.Apply(book.Begin(), map[string]entity.Quote{"AAPL": {Price: 150.0}})
		quotes := &mockQuoteRepository{
			GetQuoteFunc: func(ctx context.Context, symbol string) (entity.Quote, error) {
				return entity.Quote{Price: 400.0, PercentChange: -0.5}, nil
			},
		}

		uc := NewQuotesUsecase(&mockMarketRepository{}, quotes, book)
		out := uc.CurrentPrices(context.Background(), []string{"AAPL", "MSFT"})

		if len(out) != 2 {
			t.Fatalf("expected 2 prices, got %d", len(out))
		}
		if out["MSFT"].Price != 400.0 {
			t.Errorf("unexpected fetched price: %v", out["MSFT"].Price)
		}
		if len(quotes.calls) != 1 || quotes.calls[0] != "MSFT" {
			t.Errorf("expected a single fetch for MSFT, got: %v", quotes.calls)
		}

		// 取得した価格はスナップショットにも反映される
		if q, ok := book.Get("MSFT"); !ok || q.Price != 400.0 {
			t.Error("fetched price should be stored in the price book")
		}
	})

	t.Run("failed symbols are omitted, not an error", func(t *testing.T) {
		book := NewPriceBook()
		quotes := &mockQuoteRepository{
			GetQuoteFunc: func(ctx context.Context, symbol string) (entity.Quote, error) {
				if symbol == "BAD" {
					return entity.Quote{}, errors.New("no quote")
				}
				return entity.Quote{Price: 10.0}, nil
			},
		}

		uc := NewQuotesUsecase(&mockMarketRepository{}, quotes, book)
		out := uc.CurrentPrices(context.Background(), []string{"GOOD", "BAD"})

		if len(out) != 1 {
			t.Fatalf("expected 1 price, got %d", len(out))
		}
		if _, ok := out["BAD"]; ok {
			t.Error("failed symbol should be omitted from the result")
		}
	})
}
