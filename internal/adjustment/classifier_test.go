package adjustment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestChannel(t *testing.T) {
	cases := map[string]string{
		"Vale Transporte":   ChannelTransport,
		"Desconto VT":       ChannelTransport,
		"VT":                ChannelTransport,
		"Vale Alimentação":  ChannelMeal,
		"Refeicao obra":     ChannelMeal,
		"VA":                ChannelMeal,
		"Diária de viagem":  ChannelMeal,
		"Bônus produção":    ChannelOther,
		"Adicional noturno": ChannelOther,
		"Outros":            ChannelOther,
	}
	for label, want := range cases {
		assert.Equal(t, want, Channel(label), label)
	}
}

func TestNormalizeSign(t *testing.T) {
	v := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	// desconto lançado positivo é gravado negativo
	assert.True(t, NormalizeSign("Desconto VT", v("13.20")).Equal(v("-13.20")))
	assert.True(t, NormalizeSign("Desconto VT", v("-13.20")).Equal(v("-13.20")))

	// bônus e adicionais sempre positivos
	assert.True(t, NormalizeSign("Bônus produção", v("-50.00")).Equal(v("50.00")))
	assert.True(t, NormalizeSign("Adicional noturno", v("30.00")).Equal(v("30.00")))
	assert.True(t, NormalizeSign("Outros custos", v("-10.00")).Equal(v("10.00")))

	// rótulo neutro preserva o sinal submetido
	assert.True(t, NormalizeSign("Vale Transporte", v("-90.00")).Equal(v("-90.00")))
	assert.True(t, NormalizeSign("Vale Transporte", v("90.00")).Equal(v("90.00")))
}
