package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rentvest/property-vs-fund/internal/calculation"
	"github.com/rentvest/property-vs-fund/internal/domain"
	"github.com/shopspring/decimal"
)

func main() {
	principal := flag.String("principal", "640000", "loan principal")
	rate := flag.String("rate", "6", "annual interest rate (%)")
	term := flag.Int("term", 30, "loan term in years")
	years := flag.Int("years", 0, "years to print (default: full term)")
	flag.Parse()

	p, err := decimal.NewFromString(*principal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid principal: %v\n", err)
		os.Exit(2)
	}
	r, err := decimal.NewFromString(*rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid rate: %v\n", err)
		os.Exit(2)
	}
	if err := domain.ValidateLoanTerms(r, *term); err != nil {
		fmt.Fprintf(os.Stderr, "invalid loan: %v\n", err)
		os.Exit(2)
	}
	if *years <= 0 || *years > *term {
		*years = *term
	}

	pe, err := calculation.NewProjectionEngine(domain.VictoriaRules2024())
	if err != nil {
		fmt.Fprintf(os.Stderr, "rules: %v\n", err)
		os.Exit(1)
	}
	amort := pe.Amortization
	payment := amort.MonthlyPayment(p, r, *term)

	fmt.Printf("Principal: %s  Rate: %s%%  Term: %d years\n", p.StringFixed(2), r.String(), *term)
	fmt.Printf("Monthly payment: %s\n\n", payment.StringFixed(2))
	fmt.Printf("%-5s %15s %15s %15s %15s\n", "Year", "Opening", "Interest", "Principal", "Closing")
	for _, y := range amort.Schedule(p, r, *term, *years) {
		fmt.Printf("%-5d %15s %15s %15s %15s\n", y.Year,
			y.OpeningBalance.StringFixed(2),
			y.InterestPaid.StringFixed(2),
			y.PrincipalPaid.StringFixed(2),
			y.ClosingBalance.StringFixed(2))
	}
}
