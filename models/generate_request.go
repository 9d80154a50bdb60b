package models

type GenerateRequest struct {
	Count int    `json:"count"`
	Seed  uint64 `json:"seed,omitempty"`
}

type GenerateResponse struct {
	BatchId string            `json:"batch_id"`
	Seed    uint64            `json:"seed"`
	Records []GeneratedRecord `json:"records"`
}
