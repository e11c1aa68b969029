package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ActorLocalKey - ключ в fiber.Locals с UUID актора запроса
const ActorLocalKey = "actor"

// ActorHeader - заголовок с идентификатором актора.
// Аутентификация выполняется на API gateway платформы,
// сюда приходит уже проверенный идентификатор.
const ActorHeader = "X-Actor-ID"

// Actor - middleware, извлекающий UUID актора из заголовка.
// Отсутствующий или битый заголовок оставляет uuid.Nil:
// авторизация решается на уровне usecase.
func Actor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(ActorHeader)
		if raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Locals(ActorLocalKey, id)
			}
		}
		return c.Next()
	}
}

// ActorFromCtx возвращает UUID актора текущего запроса
func ActorFromCtx(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(ActorLocalKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
