package kpi

type ComputeKPIRequest struct {
	FuncionarioID string `form:"funcionario_id" binding:"required,uuid"`
	DataInicio    string `form:"data_inicio" binding:"required"`
	DataFim       string `form:"data_fim" binding:"required"`
}

// KPIResponse carrega os quinze indicadores do período; valor_hora,
// rate_fallback e as violações de invariante viajam ao lado dos quinze.
type KPIResponse struct {
	FuncionarioID string `json:"funcionario_id"`
	DataInicio    string `json:"data_inicio"`
	DataFim       string `json:"data_fim"`

	HorasTrabalhadas   float64 `json:"horas_trabalhadas"`
	HorasExtras        float64 `json:"horas_extras"`
	Faltas             int     `json:"faltas"`
	AtrasosHoras       float64 `json:"atrasos_horas"`
	ProdutividadePct   float64 `json:"produtividade_pct"`
	AbsenteismoPct     float64 `json:"absenteismo_pct"`
	MediaDiariaHoras   float64 `json:"media_diaria_horas"`
	FaltasJustificadas int     `json:"faltas_justificadas"`
	CustoMaoObra       string  `json:"custo_mao_obra"`
	CustoAlimentacao   string  `json:"custo_alimentacao"`
	CustoTransporte    string  `json:"custo_transporte"`
	OutrosCustos       string  `json:"outros_custos"`
	CustoTotal         string  `json:"custo_total"`
	EficienciaPct      float64 `json:"eficiencia_pct"`
	HorasPerdidas      float64 `json:"horas_perdidas"`

	ValorHora           string `json:"valor_hora"`
	RateFallback        bool   `json:"rate_fallback"`
	ViolacoesInvariante int    `json:"violacoes_invariante"`
	DiasUteis           int    `json:"dias_uteis"`
}
