package schedule

type UpsertScheduleRequest struct {
	Nome          string  `json:"nome" binding:"required"`
	Entrada       string  `json:"entrada" binding:"required"`
	SaidaAlmoco   string  `json:"saida_almoco" binding:"required"`
	RetornoAlmoco string  `json:"retorno_almoco" binding:"required"`
	Saida         string  `json:"saida" binding:"required"`
	DiasSemana    int     `json:"dias_semana"`
	HorasDiarias  float64 `json:"horas_diarias" binding:"required"`
}

type ScheduleResponse struct {
	ID            string  `json:"id"`
	Nome          string  `json:"nome"`
	Entrada       string  `json:"entrada"`
	SaidaAlmoco   string  `json:"saida_almoco"`
	RetornoAlmoco string  `json:"retorno_almoco"`
	Saida         string  `json:"saida"`
	DiasSemana    int     `json:"dias_semana"`
	HorasDiarias  float64 `json:"horas_diarias"`
}
