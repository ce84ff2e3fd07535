// Package usecase はportfolioフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"portfolio_backend/internal/feature/portfolio/domain"
	"portfolio_backend/internal/feature/portfolio/domain/entity"
)

// HoldingRepository は保有銘柄の永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type HoldingRepository interface {
	// ListByUser はユーザーの全保有銘柄を返します。
	ListByUser(ctx context.Context, userID uint) ([]entity.Holding, error)

	// FindByUserAndSymbol は(userID, symbol)に一致する保有銘柄を取得します。
	// 存在しない場合、domain.ErrHoldingNotFoundを返します。
	FindByUserAndSymbol(ctx context.Context, userID uint, symbol string) (*entity.Holding, error)

	// FindByID は(id, userID)に一致する保有銘柄を取得します。
	// 他ユーザーの行は存在しないものとして扱います。
	FindByID(ctx context.Context, id, userID uint) (*entity.Holding, error)

	// Create は新しい保有銘柄を永続化します。
	// (userID, symbol)が重複する場合、domain.ErrDuplicateHoldingを返します。
	Create(ctx context.Context, h *entity.Holding) error

	// Update は保有銘柄の数量・平均取得単価・名称を更新します。
	Update(ctx context.Context, h *entity.Holding) error

	// Delete は(id, userID)に一致する行を削除します。
	// 一致する行がない場合、domain.ErrHoldingNotFoundを返します。
	Delete(ctx context.Context, id, userID uint) error

	// ListDistinctSymbols は全ユーザーの保有銘柄コードを重複なしで返します。
	// 価格リフレッシュの対象銘柄の列挙に使用します。
	ListDistinctSymbols(ctx context.Context) ([]string, error)
}

// HoldingInput は追加・更新リクエストの入力値です。
// quantity/avgPriceの正値チェックはトランスポート層のバリデーションで済んでいます。
type HoldingInput struct {
	Symbol   string
	Name     string
	Quantity float64
	AvgPrice float64
}

// portfolioUsecase は保有銘柄CRUDと評価額計算のユースケースを実装します。
type portfolioUsecase struct {
	holdings HoldingRepository
	quotes   QuoteSource
}

// NewPortfolioUsecase はportfolioUsecaseの新しいインスタンスを生成します。
func NewPortfolioUsecase(holdings HoldingRepository, quotes QuoteSource) *portfolioUsecase {
	return &portfolioUsecase{holdings: holdings, quotes: quotes}
}

// Merge は既存の保有銘柄に追加購入分を加重平均で合成します。
// 例: 10株@$100の保有に10株@$200を追加すると20株@$150になります。
// I/Oを伴わない純粋関数で、追加時のマージ規則はここに一元化されています。
func Merge(existing entity.Holding, addQuantity, addPrice float64) entity.Holding {
	total := existing.Quantity + addQuantity
	existing.AvgPrice = (existing.AvgPrice*existing.Quantity + addPrice*addQuantity) / total
	existing.Quantity = total
	return existing
}

// List はユーザーの全保有銘柄を返します。
func (u *portfolioUsecase) List(ctx context.Context, userID uint) ([]entity.Holding, error) {
	return u.holdings.ListByUser(ctx, userID)
}

// Add は保有銘柄を追加します。同じ銘柄を既に保有している場合は
// 行を複製せず、数量合算・加重平均でマージします。
func (u *portfolioUsecase) Add(ctx context.Context, userID uint, in HoldingInput) (*entity.Holding, error) {
	existing, err := u.holdings.FindByUserAndSymbol(ctx, userID, in.Symbol)
	switch {
	case err == nil:
		merged := Merge(*existing, in.Quantity, in.AvgPrice)
		if err := u.holdings.Update(ctx, &merged); err != nil {
			return nil, fmt.Errorf("failed to merge holding: %w", err)
		}
		return &merged, nil
	case errors.Is(err, domain.ErrHoldingNotFound):
		h := &entity.Holding{
			UserID:   userID,
			Symbol:   in.Symbol,
			Name:     in.Name,
			Quantity: in.Quantity,
			AvgPrice: in.AvgPrice,
		}
		if err := u.holdings.Create(ctx, h); err != nil {
			return nil, err
		}
		return h, nil
	default:
		return nil, err
	}
}

// Update は(id, userID)で特定される保有銘柄の名称・数量・平均取得単価を置き換えます。
func (u *portfolioUsecase) Update(ctx context.Context, userID, id uint, in HoldingInput) (*entity.Holding, error) {
	h, err := u.holdings.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	h.Name = in.Name
	h.Quantity = in.Quantity
	h.AvgPrice = in.AvgPrice
	if err := u.holdings.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Delete は(id, userID)で特定される保有銘柄を削除します。
// userIDでスコープするため、他ユーザーの保有銘柄は削除できません。
func (u *portfolioUsecase) Delete(ctx context.Context, userID, id uint) error {
	return u.holdings.Delete(ctx, id, userID)
}
