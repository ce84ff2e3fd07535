// Package scheduler はバックグラウンドの定期ジョブを管理します。
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// refreshSpec は価格リフレッシュの実行間隔です。
// ダッシュボードのポーリング間隔（60秒）に合わせています。
const refreshSpec = "@every 1m"

// Refresher は1回分の価格リフレッシュを実行します。
// Goの慣例に従い、インターフェースは利用者（scheduler）側で定義します。
type Refresher interface {
	RefreshOnce(ctx context.Context) error
}

// Scheduler はcronジョブのライフサイクルを管理します。
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

// NewScheduler はSchedulerの新しいインスタンスを生成します。
// ctxは各ジョブ実行に引き渡され、シャットダウン時のキャンセルに使われます。
func NewScheduler(ctx context.Context) *Scheduler {
	return &Scheduler{cron: cron.New(), ctx: ctx}
}

// RegisterPriceRefresh は60秒間隔の価格リフレッシュジョブを登録します。
func (s *Scheduler) RegisterPriceRefresh(r Refresher) error {
	if _, err := s.cron.AddFunc(refreshSpec, func() {
		if err := r.RefreshOnce(s.ctx); err != nil {
			slog.Error("price refresh cycle failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("register price refresh: %w", err)
	}
	return nil
}

// Start はスケジューラーを起動します。
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started")
}

// Stop はスケジューラーを停止し、実行中のジョブの完了を待ちます。
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	slog.Info("scheduler stopped")
}
