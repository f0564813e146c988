package utils

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DateLayout é o formato de data aceito pelos filtros do portal
const DateLayout = time.DateOnly

// ParseDate interpreta uma data AAAA-MM-DD
func ParseDate(dateStr string) (time.Time, error) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "data inválida %q", dateStr)
	}
	return date, nil
}

func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// DaysBefore retorna a data n dias antes da referência, já formatada
func DaysBefore(reference time.Time, days int) string {
	return FormatDate(reference.AddDate(0, 0, -days))
}
