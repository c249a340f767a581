package mail

import "context"

// LogMailer 只把郵件寫進 log，開發環境使用
type LogMailer struct {
	Logger Logger
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.Logger.Infof("mail to=%s subject=%q\n%s", msg.To, msg.Subject, msg.Body)
	return nil
}

func (m *LogMailer) Close() error { return nil }
