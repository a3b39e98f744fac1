package meal

type UpsertMealRequest struct {
	FuncionarioID string  `json:"funcionario_id" binding:"required,uuid"`
	Data          string  `json:"data" binding:"required"`
	RestauranteID *string `json:"restaurante_id"`
	ObraID        *string `json:"obra_id"`
	TipoRefeicao  string  `json:"tipo_refeicao" binding:"required"`
	Valor         string  `json:"valor" binding:"required"`
}

type MealResponse struct {
	ID            string  `json:"id"`
	FuncionarioID string  `json:"funcionario_id"`
	Data          string  `json:"data"`
	RestauranteID *string `json:"restaurante_id,omitempty"`
	ObraID        *string `json:"obra_id,omitempty"`
	TipoRefeicao  string  `json:"tipo_refeicao"`
	Valor         string  `json:"valor"`
}
