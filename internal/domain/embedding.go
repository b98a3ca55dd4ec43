package domain

import "time"

// Payload описывает дополнительную информацию вектора
type Payload map[string]any

// Embedding представляет TF-IDF вектор одного товара в плотном виде
type Embedding struct {
	ID      string
	Vector  []float32
	Payload Payload
}

func NewEmbedding(id string, vector []float32, payload Payload) *Embedding {
	return &Embedding{
		ID:      id,
		Vector:  vector,
		Payload: payload,
	}
}

func NewPayload(productID string, vocabularyVersion string) Payload {
	return Payload{
		"product_id":         productID,
		"created_at":         time.Now().UTC().UnixNano(),
		"vocabulary_version": vocabularyVersion,
	}
}
