package domain

import "github.com/google/uuid"

// Stream names (должны совпадать с импортёром изысканий)
const (
	StreamBoreholeImported = "stream:borehole:imported"
	StreamBoreholeEnriched = "stream:borehole:enriched"
)

// BoreholeImportedEvent - событие о загруженной партии скважин,
// координаты которых нужно обогатить (grid -> geo)
type BoreholeImportedEvent struct {
	BatchID  uuid.UUID `json:"batch_id"`
	PointIDs []string  `json:"point_ids"`
}

// BoreholeEnrichedEvent - результат обогащения партии
type BoreholeEnrichedEvent struct {
	BatchID  uuid.UUID `json:"batch_id"`
	Enriched int       `json:"enriched"`
	Failed   int       `json:"failed"`
	Error    string    `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
