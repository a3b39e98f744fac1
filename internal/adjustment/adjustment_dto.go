package adjustment

type UpsertAdjustmentRequest struct {
	FuncionarioID string `json:"funcionario_id" binding:"required,uuid"`
	Data          string `json:"data" binding:"required"`
	Categoria     string `json:"categoria" binding:"required"`
	Valor         string `json:"valor" binding:"required"`
}

type AdjustmentResponse struct {
	ID            string `json:"id"`
	FuncionarioID string `json:"funcionario_id"`
	Data          string `json:"data"`
	Categoria     string `json:"categoria"`
	Valor         string `json:"valor"`
	Canal         string `json:"canal"`
}
