package mail

import (
	"context"
	"time"

	"income-expenses-api/internal/worker"
)

const sendTimeout = 30 * time.Second

// Dispatcher 以 worker pool 非同步寄信；寄送失敗只記錄，不回報給呼叫者
type Dispatcher struct {
	pool   worker.Pool
	mailer Mailer
	logger Logger
}

func NewDispatcher(pool worker.Pool, mailer Mailer, logger Logger) *Dispatcher {
	return &Dispatcher{pool: pool, mailer: mailer, logger: logger}
}

// Dispatch 不會阻塞；佇列已滿時丟棄並記錄
func (d *Dispatcher) Dispatch(msg Message) {
	err := d.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := d.mailer.Send(ctx, msg); err != nil {
			d.logger.Errorf("send mail to %s failed: %v", msg.To, err)
		}
	})
	if err != nil {
		d.logger.Errorf("mail to %s dropped: %v", msg.To, err)
	}
}
