// Package renderer turns portfolio snapshots into markdown reports.
// The reports are plain text first: they read fine in a terminal or a
// git diff, and render nicely through any markdown viewer.
package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/hcpang/folio"
)

// renderTemplate parses and executes a named template over data.
// Template errors are programming errors, so they panic.
func renderTemplate(name, tmpl string, data any) string {
	t := template.Must(template.New(name).Parse(tmpl))
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		panic(fmt.Sprintf("cannot render %s: %v", name, err))
	}
	return sb.String()
}

// money formats an amount in the given currency.
func money(amount float64, currency string) string {
	return folio.M(amount, currency).String()
}

// signedMoney formats an amount with an explicit sign, "-" for zero.
func signedMoney(amount float64, currency string) string {
	return folio.M(amount, currency).SignedString()
}

// shares formats a share quantity.
func shares(quantity float64) string {
	return folio.Q(quantity).String()
}

// signedShares formats a share quantity with an explicit sign.
func signedShares(quantity float64) string {
	return folio.Q(quantity).SignedString()
}
