// Package docs Safety Microservice API.
//
// Микросервис безопасности туристов. Предоставляет API для управления
// круговыми геозонами, приёма позиций туристов с выводом статуса,
// жизненного цикла алертов и инцидентов, цифровых личностей и credentials.
//
// Основные возможности:
// - Управление круговыми геозонами и проверка вхождения точки
// - Приём позиций туристов с автоматическим zone_breach алертом
// - Алерты с реагированием служб (police, medical, fire, rescue)
// - Инциденты с привязкой credentials
// - Плоская модель ролей ADMIN / ISSUER / RESPONDER
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	Security:
//	- api_key:
//
//	SecurityDefinitions:
//	api_key:
//	     type: apiKey
//	     name: Authorization
//	     in: header
//
// swagger:meta
package docs
