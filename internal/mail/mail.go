// Package mail 將驗證信與重設密碼信交給外部寄送管道
package mail

import "context"

// Message 一封純文字郵件
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer 實際寄送郵件
type Mailer interface {
	Send(ctx context.Context, msg Message) error
	Close() error
}

// Logger 為 gommon log.Logger 所需的最小子集
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
