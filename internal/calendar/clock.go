package calendar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Clock é um horário do dia em minutos desde a meia-noite. Toda a aritmética
// de ponto acontece em minutos inteiros; a conversão para horas decimais é
// feita uma única vez, no fim (MinutesToHours). Nunca concatenar minutos na
// parte decimal.
type Clock int

// ParseClock aceita "HH:MM" (e "HH:MM:SS", ignorando os segundos).
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("horário inválido %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("horário inválido %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("horário inválido %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("horário fora do intervalo %q", s)
	}
	return Clock(h*60 + m), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) Minutes() int { return int(c) }

// MinutesToHours converte minutos para horas decimais com duas casas.
// 57 minutos são 0.95 horas, não 0.57.
func MinutesToHours(minutes int) float64 {
	return Round2(float64(minutes) / 60.0)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
