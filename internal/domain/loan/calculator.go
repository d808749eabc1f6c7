// Package loan contiene los servicios de dominio puros del préstamo.
package loan

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/prestamos-api/internal/domain/entity"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Derive calcula el total a pagar y la cuota mensual con interés simple (no compuesto).
//
//	fracción = interestRate / 100
//	meses:  interés = amount * fracción * (months / 12);  cuota = total / months
//	años:   interés = amount * fracción * years;          cuota = total / (years * 12)
//
// Es un enriquecimiento best-effort: si falta el largo del plazo para la unidad
// elegida (o la unidad no es válida) devuelve ok=false sin calcular ni fallar.
func Derive(amount, rate decimal.Decimal, term entity.TermUnit, months, years int) (totalPayable, monthlyInstallment decimal.Decimal, ok bool) {
	fraction := rate.Div(hundred)

	switch term {
	case entity.TermMonths:
		if months < 1 {
			return decimal.Decimal{}, decimal.Decimal{}, false
		}
		m := decimal.NewFromInt(int64(months))
		interest := amount.Mul(fraction).Mul(m.Div(twelve))
		totalPayable = amount.Add(interest)
		monthlyInstallment = totalPayable.Div(m)
		return totalPayable, monthlyInstallment, true

	case entity.TermYears:
		if years < 1 {
			return decimal.Decimal{}, decimal.Decimal{}, false
		}
		y := decimal.NewFromInt(int64(years))
		interest := amount.Mul(fraction).Mul(y)
		totalPayable = amount.Add(interest)
		monthlyInstallment = totalPayable.Div(y.Mul(twelve))
		return totalPayable, monthlyInstallment, true
	}

	return decimal.Decimal{}, decimal.Decimal{}, false
}

// Recalculate reaplica Derive sobre la entidad y deja los derivados consistentes.
// Si Derive no puede calcular, los derivados quedan sin valor (Valid=false).
func Recalculate(l *entity.Loan) {
	total, installment, ok := Derive(l.LoanAmount, l.InterestRate, l.Term, l.Months, l.Years)
	if !ok {
		l.TotalPayable = decimal.NullDecimal{}
		l.MonthlyInstallment = decimal.NullDecimal{}
		return
	}
	l.TotalPayable = decimal.NullDecimal{Decimal: total, Valid: true}
	l.MonthlyInstallment = decimal.NullDecimal{Decimal: installment, Valid: true}
}
