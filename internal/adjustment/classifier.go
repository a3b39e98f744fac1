package adjustment

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	transportRe = regexp.MustCompile(`(?i)transport|vale.transport|^vt$`)
	mealRe      = regexp.MustCompile(`(?i)aliment|refeicao|vale.aliment|^va$|viagem`)

	positiveRe = regexp.MustCompile(`(?i)bonus|bônus|adicional|outros`)
	negativeRe = regexp.MustCompile(`(?i)desconto`)
)

// Channel deriva o canal de KPI do rótulo da categoria. Rótulos que não
// casam com transporte nem alimentação caem em "other" (bônus e extras
// genéricos).
func Channel(label string) string {
	trimmed := strings.TrimSpace(label)
	switch {
	case transportRe.MatchString(trimmed):
		return ChannelTransport
	case mealRe.MatchString(trimmed):
		return ChannelMeal
	default:
		return ChannelOther
	}
}

// NormalizeSign força o sinal pelo rótulo: bônus, adicionais e "outros" são
// sempre positivos; descontos sempre negativos; demais rótulos preservam o
// sinal submetido. "Desconto VT" lançado com 13.20 é gravado como -13.20.
func NormalizeSign(label string, value decimal.Decimal) decimal.Decimal {
	trimmed := strings.TrimSpace(label)
	switch {
	case negativeRe.MatchString(trimmed):
		return value.Abs().Neg()
	case positiveRe.MatchString(trimmed):
		return value.Abs()
	default:
		return value
	}
}
