package models

// CartSubtotal sums price x quantity over all lines. Delivery is free in
// this deployment, so the order total before discount equals the subtotal.
func CartSubtotal(lines []*CartLine) Money {
	total := MoneyFromInt(0)
	for _, l := range lines {
		total = total.Add(l.Price.MulInt(l.Quantity))
	}
	return total
}
