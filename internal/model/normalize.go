package model

import "golang.org/x/text/unicode/norm"

// NormalizeText returns s in Unicode NFC form.
// Names typed on different keyboards can arrive composed or decomposed;
// deletion matches names byte for byte, so they are normalized once on entry.
func NormalizeText(s string) string {
	return norm.NFC.String(s)
}

// Normalized returns a copy of b with every text field in NFC form.
func (b Booking) Normalized() Booking {
	b.GuestName = NormalizeText(b.GuestName)
	b.Room = NormalizeText(b.Room)
	b.CheckInDate = NormalizeText(b.CheckInDate)
	b.CheckOutDate = NormalizeText(b.CheckOutDate)
	return b
}

// Normalized returns a copy of c with its name in NFC form.
func (c Customer) Normalized() Customer {
	c.Name = NormalizeText(c.Name)
	return c
}
