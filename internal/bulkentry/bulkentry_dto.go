package bulkentry

// Políticas de conflito do lançamento em lote.
const (
	PolicySkipExisting   = "skip_existing"
	PolicyOverwrite      = "overwrite"
	PolicyFailOnConflict = "fail_on_conflict"
)

// Desfechos por par (funcionário, data).
const (
	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Template é o molde aplicado a cada par: tipo, horários opcionais, obra e
// percentual de extra fixado.
type Template struct {
	Tipo             string   `json:"tipo" binding:"required"`
	Entrada          *string  `json:"entrada"`
	SaidaAlmoco      *string  `json:"saida_almoco"`
	RetornoAlmoco    *string  `json:"retorno_almoco"`
	Saida            *string  `json:"saida"`
	ObraID           *string  `json:"obra_id"`
	Observacoes      string   `json:"observacoes"`
	PercentualExtras *float64 `json:"percentual_extras"`
}

type ApplyRequest struct {
	Template       Template `json:"template" binding:"required"`
	FuncionarioIDs []string `json:"funcionario_ids" binding:"required,min=1"`
	DataInicio     string   `json:"data_inicio" binding:"required"`
	DataFim        string   `json:"data_fim" binding:"required"`
	Politica       string   `json:"politica" binding:"required,oneof=skip_existing overwrite fail_on_conflict"`
}

type PairOutcome struct {
	FuncionarioID string `json:"funcionario_id"`
	Data          string `json:"data"`
	Resultado     string `json:"resultado"`
	Motivo        string `json:"motivo,omitempty"`
}

type ApplyResponse struct {
	Criados    int           `json:"criados"`
	Alterados  int           `json:"alterados"`
	Ignorados  int           `json:"ignorados"`
	Falhas     int           `json:"falhas"`
	Resultados []PairOutcome `json:"resultados"`
}
