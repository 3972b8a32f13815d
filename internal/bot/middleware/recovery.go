package middleware

import (
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
)

// RecoverFromPanic перехватывает панику в обработчике апдейта.
// Один сломанный апдейт не должен ронять весь polling.
func RecoverFromPanic() {
	if r := recover(); r != nil {
		log.WithFields(log.Fields{
			"component": "panic_recovery",
			"panic":     fmt.Sprintf("%v", r),
			"stack":     string(debug.Stack()),
		}).Error("ПАНИКА в обработчике — восстановлено")
	}
}
