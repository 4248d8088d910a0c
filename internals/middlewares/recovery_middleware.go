// file: internals/middlewares/recovery_middleware.go
package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RecoveryMiddleware mengubah panic handler menjadi respons 500 — satu
// request verifikasi yang panic tidak boleh menjatuhkan proses untuk
// seluruh tenant. Stack trace dicetak ke log untuk dilacak.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
	})
}
