// Package timeline раскладывает этапы заказа по шкале времени для диаграммы Ганта.
package timeline

import (
	"time"

	"engler-house/internal/models"
)

// Span: отрезок дат одного этапа; Start <= End проверяет вызывающий.
type Span struct {
	Start time.Time
	End   time.Time
}

type Bar struct {
	Span
	DurationDays    int
	PositionPercent float64
	WidthPercent    float64
}

type Timeline struct {
	Start     time.Time
	End       time.Time
	TotalDays int
	// Bars идут в том же порядке, что и входные отрезки
	Bars []Bar
}

// Project строит шкалу по непустому набору отрезков.
// TotalDays всегда >= 1 за счёт "+1", так что деления на ноль нет.
func Project(spans []Span) Timeline {
	if len(spans) == 0 {
		return Timeline{}
	}

	start, end := spans[0].Start, spans[0].End
	for _, s := range spans[1:] {
		if s.Start.Before(start) {
			start = s.Start
		}
		if s.End.After(end) {
			end = s.End
		}
	}

	total := models.DaysBetween(start, end) + 1
	bars := make([]Bar, 0, len(spans))
	for _, s := range spans {
		duration := models.DaysBetween(s.Start, s.End) + 1
		bars = append(bars, Bar{
			Span:            s,
			DurationDays:    duration,
			PositionPercent: float64(models.DaysBetween(start, s.Start)) / float64(total) * 100,
			WidthPercent:    float64(duration) / float64(total) * 100,
		})
	}

	return Timeline{Start: start, End: end, TotalDays: total, Bars: bars}
}

// ForOrder строит шкалу заказа; без этапов границы берутся из дат самого заказа.
func ForOrder(order models.Order) Timeline {
	if len(order.Tasks) == 0 {
		return Timeline{
			Start:     order.StartDate,
			End:       order.EndDate,
			TotalDays: models.DaysBetween(order.StartDate, order.EndDate) + 1,
			Bars:      []Bar{},
		}
	}

	spans := make([]Span, 0, len(order.Tasks))
	for _, t := range order.Tasks {
		spans = append(spans, Span{Start: t.StartDate, End: t.EndDate})
	}
	return Project(spans)
}
