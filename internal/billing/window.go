package billing

import "time"

// Window is an inclusive reporting range. It is only ever used for
// filtering, never stored.
type Window struct {
	Start time.Time
	End   time.Time
}

// MonthWindow covers one calendar month, first day through last day.
func MonthWindow(year int, month time.Month) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(0, 1, -1)}
}

func RangeWindow(start, end time.Time) Window {
	return Window{Start: start, End: end}
}

// DefaultWindow is the trailing three months ending today, used whenever
// a listing or summary request names no window of its own.
func DefaultWindow(today time.Time) Window {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return Window{Start: day.AddDate(0, -3, 0), End: day}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// EffectiveDate picks the date field a record is reported under: credit
// card purchases bucket by their statement due date, everything else by
// the purchase date itself.
func EffectiveDate(method PaymentMethod, purchaseDate, dueDate time.Time) time.Time {
	if method == PaymentCreditCard {
		return dueDate
	}
	return purchaseDate
}

// MatchesExpense reports whether an expense row belongs to the window,
// testing the row's effective date.
func (w Window) MatchesExpense(method PaymentMethod, purchaseDate, dueDate time.Time) bool {
	return w.Contains(EffectiveDate(method, purchaseDate, dueDate))
}

// MatchesIncome tests an income's single date field.
func (w Window) MatchesIncome(date time.Time) bool {
	return w.Contains(date)
}
