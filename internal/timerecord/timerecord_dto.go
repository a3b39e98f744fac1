package timerecord

type SubmitRecordRequest struct {
	FuncionarioID    string   `json:"funcionario_id" binding:"required,uuid"`
	Data             string   `json:"data" binding:"required"`
	Tipo             string   `json:"tipo" binding:"required"`
	Entrada          *string  `json:"entrada"`
	SaidaAlmoco      *string  `json:"saida_almoco"`
	RetornoAlmoco    *string  `json:"retorno_almoco"`
	Saida            *string  `json:"saida"`
	ObraID           *string  `json:"obra_id"`
	Observacoes      string   `json:"observacoes"`
	PercentualExtras *float64 `json:"percentual_extras"`
}

type ListRecordsRequest struct {
	FuncionarioID *string `form:"funcionario_id"`
	ObraID        *string `form:"obra_id"`
	Tipo          *string `form:"tipo"`
	DataInicio    *string `form:"data_inicio"`
	DataFim       *string `form:"data_fim"`
}

type DeleteByPeriodRequest struct {
	DataInicio     string   `json:"data_inicio" binding:"required"`
	DataFim        string   `json:"data_fim" binding:"required"`
	FuncionarioIDs []string `json:"funcionario_ids"`
	// Confirmar=false devolve só a prévia; true efetiva a exclusão.
	Confirmar bool `json:"confirmar"`
}

type RecordResponse struct {
	ID            string  `json:"id"`
	FuncionarioID string  `json:"funcionario_id"`
	Data          string  `json:"data"`
	Tipo          string  `json:"tipo"`
	Entrada       *string `json:"entrada,omitempty"`
	SaidaAlmoco   *string `json:"saida_almoco,omitempty"`
	RetornoAlmoco *string `json:"retorno_almoco,omitempty"`
	Saida         *string `json:"saida,omitempty"`

	HorasTrabalhadas     float64 `json:"horas_trabalhadas"`
	HorasExtras          float64 `json:"horas_extras"`
	PercentualExtras     float64 `json:"percentual_extras"`
	MinutosAtrasoEntrada int     `json:"minutos_atraso_entrada"`
	MinutosAtrasoSaida   int     `json:"minutos_atraso_saida"`
	TotalAtrasoMinutos   int     `json:"total_atraso_minutos"`
	TotalAtrasoHoras     float64 `json:"total_atraso_horas"`

	ObraID      *string `json:"obra_id,omitempty"`
	Observacoes string  `json:"observacoes,omitempty"`
}

type DeletePreviewResponse struct {
	Total   int64            `json:"total"`
	Amostra []RecordResponse `json:"amostra"`
}

type DeleteByPeriodResponse struct {
	Excluidos int64 `json:"excluidos"`
}
