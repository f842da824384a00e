package port

import "context"

// PriceSourcePort - контракт источника цен (поисковый API маркетплейса).
type PriceSourcePort interface {
	// FetchMinPrice выполняет один поисковый запрос и возвращает минимальную
	// цену в ARS среди результатов. found == false (без ошибки) означает,
	// что подходящих объявлений нет. Ошибка - транспортный сбой или не-2xx
	// ответ; вызывающая сторона логирует её и продолжает со следующей записью.
	FetchMinPrice(ctx context.Context, query string, maxResults int) (price float64, found bool, err error)
}
