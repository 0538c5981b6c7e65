package utils

import "time"

// StartOfDay retorna a meia-noite do dia de t no fuso informado
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// NextMidnight retorna a próxima meia-noite após t no fuso informado
func NextMidnight(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1)
}

// DayKey formata o dia de t no fuso informado (YYYY-MM-DD)
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.DateOnly)
}
