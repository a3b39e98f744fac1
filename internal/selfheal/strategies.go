package selfheal

// BackfillKind distingue como uma tabela órfã descobre seu tenant.
type BackfillKind int

const (
	// BackfillJoin preenche via junção com outra tabela que já tem
	// tenant_id (um salto por chave estrangeira).
	BackfillJoin BackfillKind = iota
	// BackfillMode preenche com o tenant mais frequente já gravado; último
	// recurso para tabelas sem chave que leve ao dono.
	BackfillMode
)

// Strategy descreve o preenchimento de tenant_id de uma tabela.
type Strategy struct {
	Kind BackfillKind

	// junção: coluna local e tabela/coluna remota
	LocalKey    string
	ParentTable string
	ParentKey   string

	// para BackfillMode, a tabela de onde sai a moda
	ModeSource string
}

// strategies é o mapa estático tabela → preenchimento. Toda tabela
// operacional precisa constar aqui; tabelas novas sem estratégia são um
// erro de programação detectado no bootstrap.
var strategies = map[string]Strategy{
	// um salto via funcionário
	"registro_ponto":          {Kind: BackfillJoin, LocalKey: "funcionario_id", ParentTable: "funcionario", ParentKey: "id"},
	"outro_custo":             {Kind: BackfillJoin, LocalKey: "funcionario_id", ParentTable: "funcionario", ParentKey: "id"},
	"registro_alimentacao":    {Kind: BackfillJoin, LocalKey: "funcionario_id", ParentTable: "funcionario", ParentKey: "id"},
	"foto_facial_funcionario": {Kind: BackfillJoin, LocalKey: "funcionario_id", ParentTable: "funcionario", ParentKey: "id"},

	// sem chave até o dono: moda dos tenants já gravados
	"funcionario":      {Kind: BackfillMode, ModeSource: "funcionario"},
	"horario_trabalho": {Kind: BackfillMode, ModeSource: "funcionario"},
	"obra":             {Kind: BackfillMode, ModeSource: "funcionario"},
	"feriado":          {Kind: BackfillMode, ModeSource: "funcionario"},
}

// globalTables são as poucas tabelas de escopo global que nunca recebem
// tenant_id.
var globalTables = map[string]struct{}{
	"outbox_events":     {},
	"schema_migrations": {},
}

// IsGlobal diz se a tabela fica fora do reparo de tenant.
func IsGlobal(table string) bool {
	_, ok := globalTables[table]
	return ok
}

// StrategyFor devolve a estratégia da tabela.
func StrategyFor(table string) (Strategy, bool) {
	s, ok := strategies[table]
	return s, ok
}
