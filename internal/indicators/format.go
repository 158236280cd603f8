package indicators

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var clpPrinter = message.NewPrinter(language.MustParse("es-CL"))

// FormatCLP форматирует сумму в песо по чилийским соглашениям:
// символ $, разделитель тысяч — точка, без дробной части.
func FormatCLP(amount int64) string {
	return clpPrinter.Sprintf("$%v", number.Decimal(amount))
}
