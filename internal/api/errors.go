// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package api

// User-facing messages. The canvas shows them verbatim.
const (
	msgInvalidJSON      = "Некорректный JSON"
	msgNoInterests      = "Нужно передать интересы"
	msgRecommendFailed  = "Не удалось получить рекомендации"
	msgNotFound         = "Не найдено"
	msgMethodNotAllowed = "Метод не поддерживается"
	msgTooManyRequests  = "Слишком много запросов, попробуйте позже"
	msgRequestTooLarge  = "Слишком большой запрос"
)
