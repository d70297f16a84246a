package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"github.com/mmynk/pennypool/internal/models"
)

const wordWrap = 100

// amountFormatter displays decimal amounts in one currency.
type amountFormatter struct {
	cur money.Currency
}

func newAmountFormatter(code string) (*amountFormatter, error) {
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		return nil, fmt.Errorf("unknown currency %q", code)
	}
	return &amountFormatter{cur: *cur}, nil
}

func (f *amountFormatter) format(amount decimal.Decimal) string {
	minor := amount.Shift(int32(f.cur.Fraction)).Round(0)
	return f.cur.Formatter().Format(minor.IntPart())
}

func (f *amountFormatter) formatNull(amount decimal.NullDecimal) string {
	if !amount.Valid {
		return "-"
	}
	return f.format(amount.Decimal)
}

func metricTitle(m models.Metric) string {
	switch m {
	case models.MetricSavings:
		return "Savings"
	case models.MetricExpenses:
		return "Expenses"
	case models.MetricNetWorth:
		return "Net worth"
	}
	return string(m)
}

// cell escapes text for a markdown table cell.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func render(w io.Writer, markdown string, plain bool) error {
	if plain {
		_, err := io.WriteString(w, markdown)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return fmt.Errorf("rendering output: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
