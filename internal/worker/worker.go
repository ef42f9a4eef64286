package worker

import (
	"context"
)

// Worker - единица фоновой обработки: подписывается на свой стрим и
// работает до Stop или отмены контекста
type Worker interface {
	// Start блокирует до остановки воркера или отмены контекста
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру остановиться
	Stop() error

	// Name возвращает имя воркера
	Name() string
}
