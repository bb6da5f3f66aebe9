package summary

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/acct-ai/transaction-summary/pkg/stores"
)

// unknownVendor groups records that carry no vendor field.
const unknownVendor = "Unknown"

// Stats is the derived aggregate for one record set. TotalAmount is the only
// place a decimal sum is flattened to a float, and only after accumulation is
// complete.
type Stats struct {
	TotalTransactions int     `json:"total_transactions"`
	TotalAmount       float64 `json:"total_amount"`
	BiggestVendor     *string `json:"biggest_vendor"`
	GeneratedAt       string  `json:"generated_at"`
}

// EmptyStats is the sentinel aggregate for an empty store.
func EmptyStats() Stats {
	return Stats{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Normalize returns a JSON-safe copy of every record: decimal values become
// float64, all other fields and keys pass through unchanged. Input records
// are never mutated.
func Normalize(records []stores.Record) []stores.Record {
	normalized := make([]stores.Record, 0, len(records))
	for _, record := range records {
		out := make(stores.Record, len(record))
		for key, value := range record {
			out[key] = normalizeValue(value)
		}
		normalized = append(normalized, out)
	}
	return normalized
}

func normalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case decimal.Decimal:
		f, _ := v.Float64()
		return f
	case []decimal.Decimal:
		floats := make([]float64, len(v))
		for i, d := range v {
			floats[i], _ = d.Float64()
		}
		return floats
	case stores.Record:
		out := make(stores.Record, len(v))
		for key, nested := range v {
			out[key] = normalizeValue(nested)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, nested := range v {
			out[key] = normalizeValue(nested)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, nested := range v {
			out[i] = normalizeValue(nested)
		}
		return out
	default:
		return value
	}
}

// VendorTotals groups records by vendor and sums their amounts with decimal
// arithmetic. A record with no vendor lands under "Unknown"; a record with no
// amount counts as zero.
func VendorTotals(records []stores.Record) (map[string]decimal.Decimal, error) {
	totals := make(map[string]decimal.Decimal)
	for i, record := range records {
		amount, err := amountOf(record)
		if err != nil {
			return nil, &MalformedRecordError{Index: i, Value: record["amount"], Err: err}
		}

		vendor := unknownVendor
		if v, ok := record["vendor"].(string); ok {
			vendor = v
		}
		totals[vendor] = totals[vendor].Add(amount)
	}
	return totals, nil
}

// Summarize computes Stats over the full record set. The grand total is the
// sum of the per-vendor totals, so it stays in decimal arithmetic end to end
// and is independent of record order.
func Summarize(records []stores.Record) (Stats, error) {
	totals, err := VendorTotals(records)
	if err != nil {
		return Stats{}, err
	}

	totalAmount := decimal.Zero
	for _, total := range totals {
		totalAmount = totalAmount.Add(total)
	}

	amount, _ := totalAmount.Float64()
	return Stats{
		TotalTransactions: len(records),
		TotalAmount:       amount,
		BiggestVendor:     biggestVendor(totals),
		GeneratedAt:       time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// biggestVendor picks the vendor with the largest total. Ties go to the
// lexicographically smallest name so the result does not depend on map
// iteration order.
func biggestVendor(totals map[string]decimal.Decimal) *string {
	var best *string
	var bestTotal decimal.Decimal

	for vendor, total := range totals {
		if best == nil || total.GreaterThan(bestTotal) ||
			(total.Equal(bestTotal) && vendor < *best) {
			v := vendor
			best = &v
			bestTotal = total
		}
	}
	return best
}

// amountOf coerces a record's amount field to a decimal. A missing or null
// amount counts as zero; a present value that cannot be parsed is fatal.
func amountOf(record stores.Record) (decimal.Decimal, error) {
	raw, ok := record["amount"]
	if !ok || raw == nil {
		return decimal.Zero, nil
	}

	switch v := raw.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported amount type %T", raw)
	}
}
