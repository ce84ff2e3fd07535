// Package adapters はportfolioフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"portfolio_backend/internal/feature/portfolio/domain"
	"portfolio_backend/internal/feature/portfolio/domain/entity"
	"portfolio_backend/internal/feature/portfolio/usecase"
)

// holdingMySQL はHoldingRepositoryインターフェースのMySQL実装です。
// GORMを使用してデータベース操作を行います。
type holdingMySQL struct {
	db *gorm.DB
}

// holdingMySQLがHoldingRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.HoldingRepository = (*holdingMySQL)(nil)

// NewHoldingMySQL は指定されたgorm.DB接続でholdingMySQLの新しいインスタンスを生成します。
func NewHoldingMySQL(db *gorm.DB) *holdingMySQL {
	return &holdingMySQL{db: db}
}

// ListByUser はユーザーの全保有銘柄を銘柄コード順に返します。
func (r *holdingMySQL) ListByUser(ctx context.Context, userID uint) ([]entity.Holding, error) {
	var hs []entity.Holding
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("symbol ASC").
		Find(&hs).Error; err != nil {
		return nil, err
	}
	return hs, nil
}

// FindByUserAndSymbol は(userID, symbol)で保有銘柄を取得します。
// 存在しない場合、domain.ErrHoldingNotFoundを返します。
func (r *holdingMySQL) FindByUserAndSymbol(ctx context.Context, userID uint, symbol string) (*entity.Holding, error) {
	var h entity.Holding
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHoldingNotFound
		}
		return nil, err
	}
	return &h, nil
}

// FindByID は(id, userID)で保有銘柄を取得します。
// 他ユーザーの行はdomain.ErrHoldingNotFoundになります。
func (r *holdingMySQL) FindByID(ctx context.Context, id, userID uint) (*entity.Holding, error) {
	var h entity.Holding
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHoldingNotFound
		}
		return nil, err
	}
	return &h, nil
}

// Create は保有銘柄をデータベースに追加します。
// (userID, symbol)が重複する場合、domain.ErrDuplicateHoldingを返します。
func (r *holdingMySQL) Create(ctx context.Context, h *entity.Holding) error {
	if err := r.db.WithContext(ctx).Create(h).Error; err != nil {
		// MySQLエラー1062: ユニークキーの重複エントリ
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return domain.ErrDuplicateHolding
		}
		// テスト用SQLiteドライバはgorm.ErrDuplicatedKeyに変換する
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateHolding
		}
		return err
	}
	return nil
}

// Update は保有銘柄の名称・数量・平均取得単価を更新します。
func (r *holdingMySQL) Update(ctx context.Context, h *entity.Holding) error {
	return r.db.WithContext(ctx).
		Model(&entity.Holding{}).
		Where("id = ? AND user_id = ?", h.ID, h.UserID).
		Updates(map[string]interface{}{
			"name":      h.Name,
			"quantity":  h.Quantity,
			"avg_price": h.AvgPrice,
		}).Error
}

// Delete は(id, userID)に一致する行を削除します。
// 一致する行がない場合、domain.ErrHoldingNotFoundを返します。
func (r *holdingMySQL) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.Holding{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrHoldingNotFound
	}
	return nil
}

// ListDistinctSymbols は全ユーザーの保有銘柄コードを重複なしで返します。
func (r *holdingMySQL) ListDistinctSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Holding{}).
		Distinct().
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}
