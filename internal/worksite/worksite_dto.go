package worksite

type UpsertWorksiteRequest struct {
	Codigo          string  `json:"codigo" binding:"required"`
	Nome            string  `json:"nome" binding:"required"`
	Status          string  `json:"status"`
	Orcamento       string  `json:"orcamento"`
	DataInicio      *string `json:"data_inicio"`
	DataPrevistaFim *string `json:"data_prevista_fim"`
}

type WorksiteResponse struct {
	ID              string  `json:"id"`
	Codigo          string  `json:"codigo"`
	Nome            string  `json:"nome"`
	Status          string  `json:"status"`
	Orcamento       string  `json:"orcamento"`
	DataInicio      *string `json:"data_inicio,omitempty"`
	DataPrevistaFim *string `json:"data_prevista_fim,omitempty"`
}
