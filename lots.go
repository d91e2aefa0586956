package folioperf

// Lot represents a single purchased batch of shares at a specific price and
// date, consumed FIFO on sale.
type Lot struct {
	Date     Date
	Quantity Quantity
	Price    Money // price paid per share
}

// Cost returns the total cost of the lot (quantity times price).
func (l Lot) Cost() Money { return l.Price.Mul(l.Quantity) }

type lots []Lot

// sell consumes lots from the front of the queue until quantityToSell is
// exhausted, and returns the remaining lots, the realized gain against the
// sale price, and the cost basis removed.
//
// If the lots run out before quantityToSell does, the loop simply stops: the
// remaining over-sold quantity carries no cost basis and locks in no gain.
// This tolerates selling more than the tracked position instead of guessing
// whether the caller meant a short sale.
func (l lots) sell(quantityToSell Quantity, sellPrice Money) (remaining lots, realized, costRemoved Money) {
	for _, currentLot := range l {
		if quantityToSell.IsZero() || quantityToSell.IsNegative() {
			remaining = append(remaining, currentLot)
			continue
		}

		if currentLot.Quantity.GreaterThan(quantityToSell) {
			// Partial sale from this lot
			realized = realized.Add(sellPrice.Sub(currentLot.Price).Mul(quantityToSell))
			costRemoved = costRemoved.Add(currentLot.Price.Mul(quantityToSell))
			newLot := Lot{
				Date:     currentLot.Date,
				Quantity: currentLot.Quantity.Sub(quantityToSell),
				Price:    currentLot.Price,
			}
			remaining = append(remaining, newLot)
			quantityToSell = Q(0)
		} else {
			// Full sale of this lot
			realized = realized.Add(sellPrice.Sub(currentLot.Price).Mul(currentLot.Quantity))
			costRemoved = costRemoved.Add(currentLot.Cost())
			quantityToSell = quantityToSell.Sub(currentLot.Quantity)
		}
	}
	return remaining, realized, costRemoved
}

// totalCost sums the cost of all remaining lots.
func (l lots) totalCost() Money {
	var total Money
	for _, currentLot := range l {
		total = total.Add(currentLot.Cost())
	}
	return total
}

// totalQuantity sums the quantity of all remaining lots.
func (l lots) totalQuantity() Quantity {
	var total Quantity
	for _, currentLot := range l {
		total = total.Add(currentLot.Quantity)
	}
	return total
}
