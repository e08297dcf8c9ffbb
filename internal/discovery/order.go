// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package discovery

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownOrder is returned when an order name is not recognised.
var ErrUnknownOrder = errors.New("unknown device order")

// Order controls how the matches of a single pattern are arranged.
type Order string

const (
	// OrderAsFound keeps the glob's own order.
	OrderAsFound Order = "as-found"
	// OrderLexical sorts byte-wise, so ttyUSB10 sorts before ttyUSB2.
	OrderLexical Order = "lexical"
	// OrderNatural compares digit runs numerically, so ttyUSB2 sorts before ttyUSB10.
	OrderNatural Order = "natural"
)

// Orders lists every supported Order.
var Orders = []Order{OrderAsFound, OrderLexical, OrderNatural}

// ParseOrder converts a name into an Order. The empty string means OrderAsFound.
func ParseOrder(s string) (Order, error) {
	if s == "" {
		return OrderAsFound, nil
	}

	o := Order(strings.ToLower(s))
	if !slices.Contains(Orders, o) {
		return "", fmt.Errorf("%w: %q", ErrUnknownOrder, s)
	}

	return o, nil
}

// Apply returns the paths arranged by o. The input slice is not modified.
func (o Order) Apply(paths []string) []string {
	out := slices.Clone(paths)

	switch o {
	case OrderLexical:
		slices.Sort(out)
	case OrderNatural:
		slices.SortStableFunc(out, naturalCompare)
	}

	return out
}

func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		ra, rb := leadingDigits(a), leadingDigits(b)

		if ra > 0 && rb > 0 {
			na := strings.TrimLeft(a[:ra], "0")
			nb := strings.TrimLeft(b[:rb], "0")

			if c := len(na) - len(nb); c != 0 {
				return c
			}

			if c := strings.Compare(na, nb); c != 0 {
				return c
			}

			a, b = a[ra:], b[rb:]

			continue
		}

		if a[0] != b[0] {
			return int(a[0]) - int(b[0])
		}

		a, b = a[1:], b[1:]
	}

	return len(a) - len(b)
}

func leadingDigits(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}

	return i
}
