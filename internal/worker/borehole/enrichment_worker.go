package borehole

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/borehole-microservice/internal/domain"
	"github.com/borehole-microservice/internal/domain/repository"
	"github.com/borehole-microservice/internal/usecase"
	"github.com/borehole-microservice/internal/worker"
)

// EnrichmentWorker обрабатывает события загрузки скважин: выводит
// производные координаты из сеточных и сохраняет их
type EnrichmentWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	boreholeRepo repository.BoreholeRepository
	enricher     *usecase.CoordinateEnricher
	consumerName string
	batchSize    int
}

// NewEnrichmentWorker создает новый EnrichmentWorker
func NewEnrichmentWorker(
	streamRepo repository.StreamRepository,
	boreholeRepo repository.BoreholeRepository,
	enricher *usecase.CoordinateEnricher,
	consumerGroup string,
	batchSize int,
	logger *zap.Logger,
) *EnrichmentWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &EnrichmentWorker{
		BaseWorker:   worker.NewBaseWorker("borehole-enrichment", consumerGroup, logger),
		streamRepo:   streamRepo,
		boreholeRepo: boreholeRepo,
		enricher:     enricher,
		consumerName: consumerName,
		batchSize:    batchSize,
	}
}

// Start запускает воркер
func (w *EnrichmentWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting EnrichmentWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamBoreholeImported, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	// Партии, загруженные до подписки (или потерявшие событие),
	// добираются из таблицы
	if err := w.catchUp(ctx); err != nil {
		logger.Warn("Catch-up enrichment failed", zap.Error(err))
	}

	messages, err := w.streamRepo.ConsumeStream(ctx, domain.StreamBoreholeImported, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			if err := w.handleMessage(ctx, msg); err != nil {
				logger.Error("Failed to handle message",
					zap.String("message_id", msg.ID),
					zap.Error(err))
				// Сообщение не подтверждаем: останется в pending
				continue
			}
			if err := w.streamRepo.AckMessage(ctx, domain.StreamBoreholeImported, w.ConsumerGroup(), msg.ID); err != nil {
				logger.Error("Failed to ack message",
					zap.String("message_id", msg.ID),
					zap.Error(err))
			}
		}
	}
}

func (w *EnrichmentWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) error {
	var event domain.BoreholeImportedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	points, err := w.boreholeRepo.GetByIDs(ctx, event.PointIDs)
	if err != nil {
		return fmt.Errorf("failed to load batch points: %w", err)
	}

	enriched, failed := w.enrichAndStore(ctx, points)

	result := domain.BoreholeEnrichedEvent{
		BatchID:  event.BatchID,
		Enriched: enriched,
		Failed:   failed,
	}
	if err := w.streamRepo.PublishToStream(ctx, domain.StreamBoreholeEnriched, result); err != nil {
		w.Logger().Warn("Failed to publish enriched event",
			zap.String("batch_id", event.BatchID.String()),
			zap.Error(err))
	}

	w.Logger().Info("Batch enriched",
		zap.String("batch_id", event.BatchID.String()),
		zap.Int("enriched", enriched),
		zap.Int("failed", failed))
	return nil
}

// catchUp обогащает скважины без производных координат
func (w *EnrichmentWorker) catchUp(ctx context.Context) error {
	for {
		points, err := w.boreholeRepo.GetUnenriched(ctx, w.batchSize)
		if err != nil {
			return err
		}
		if len(points) == 0 {
			return nil
		}

		enriched, failed := w.enrichAndStore(ctx, points)
		w.Logger().Info("Catch-up batch enriched",
			zap.Int("enriched", enriched),
			zap.Int("failed", failed))

		// Выборка по enriched_at IS NULL не сдвигается, пока нечего
		// сохранять: без этой проверки партия непреобразуемых скважин
		// зациклила бы догон
		if enriched == 0 {
			w.Logger().Warn("Catch-up made no progress, leaving backlog",
				zap.Int("failed", failed))
			return nil
		}
		if len(points) < w.batchSize {
			return nil
		}
	}
}

// enrichAndStore заполняет производные координаты и сохраняет успешные
func (w *EnrichmentWorker) enrichAndStore(ctx context.Context, points []*domain.SurveyPoint) (enriched, failed int) {
	failed = w.enricher.EnsureGeo(points)
	w.enricher.EnsureProjected(points)

	ok := make([]*domain.SurveyPoint, 0, len(points))
	for _, p := range points {
		if p.HasGeo() {
			ok = append(ok, p)
		}
	}
	if len(ok) > 0 {
		if err := w.boreholeRepo.UpdateDerived(ctx, ok); err != nil {
			w.Logger().Error("Failed to store derived coordinates", zap.Error(err))
			return 0, len(points)
		}
	}
	return len(ok), failed
}
