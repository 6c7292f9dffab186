package main

import (
	"github.com/shopspring/decimal"
)

// decimalFlag adapts a decimal.Decimal to a command-line flag value.
type decimalFlag struct {
	d *decimal.Decimal
}

func (f decimalFlag) String() string {
	if f.d == nil {
		return "0"
	}
	return f.d.String()
}

func (f decimalFlag) Set(s string) error {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	*f.d = v
	return nil
}

func (f decimalFlag) Type() string { return "decimal" }
