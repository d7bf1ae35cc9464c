package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-stock/internal/infrastructure/i18n"
)

// LanguageMiddleware propaga Accept-Language al contexto para que las razones de movimiento
// generadas automáticamente salgan en el idioma del cliente.
func LanguageMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if accept := c.Get(fiber.HeaderAcceptLanguage); accept != "" {
			c.SetUserContext(i18n.WithLanguage(c.UserContext(), accept))
		}
		return c.Next()
	}
}
