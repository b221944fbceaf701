package issue_nonce

import "time"

type NonceIssuer interface {
	Issue(action string) (string, time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
