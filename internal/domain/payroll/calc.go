package payroll

import (
	"fmt"
	"time"
)

// Computation carries the pay figures derived from one salary record.
// Amounts are Tunisian dinar values rendered with three decimals.
type Computation struct {
	TotalWorkingDays int
	WorkedDays       int
	DailyRate        float64
	BasePay          float64
	NetTotal         float64
}

// WorkingDays counts the days of the month whose weekday is not Sunday.
// Sunday is the only fixed non-working day; public holidays are ignored.
func WorkingDays(year, month int) int {
	count := 0
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if date.Weekday() != time.Sunday {
			count++
		}
	}
	return count
}

// Compute derives the monthly pay figures. WorkedDays is deliberately not
// clamped when absence exceeds the working days of the month.
func Compute(year, month int, salaire, prime float64, absence int, avance float64) Computation {
	totalWorkingDays := WorkingDays(year, month)
	workedDays := totalWorkingDays - absence

	dailyRate := salaire / float64(totalWorkingDays)
	basePay := dailyRate * float64(workedDays)

	return Computation{
		TotalWorkingDays: totalWorkingDays,
		WorkedDays:       workedDays,
		DailyRate:        dailyRate,
		BasePay:          basePay,
		NetTotal:         basePay + prime - avance,
	}
}

// FormatAmount renders a monetary value with the local three-decimal
// convention, e.g. 34.615.
func FormatAmount(value float64) string {
	return fmt.Sprintf("%.3f", value)
}
