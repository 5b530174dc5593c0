// Package inventory reglas de dominio puras sobre cantidades y pesos de muestras.
package inventory

import "github.com/shopspring/decimal"

// TotalWeight peso total de un lote: PesoTotal = PesoUnitario * Cantidad.
// Se calcula al registrar la muestra (o al recibirla por traslado) y queda fijo.
func TotalWeight(unitWeight decimal.Decimal, quantity int) decimal.Decimal {
	if quantity <= 0 || unitWeight.IsNegative() {
		return decimal.Zero
	}
	return unitWeight.Mul(decimal.NewFromInt(int64(quantity)))
}
