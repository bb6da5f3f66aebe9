package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/acct-ai/transaction-summary/internal/summary"
	dynamostore "github.com/acct-ai/transaction-summary/pkg/stores/dynamodb"
)

// Command line flags
var (
	tableName = flag.String("table", "transactions", "DynamoDB table to inspect")
	region    = flag.String("region", "us-east-1", "AWS region")
	endpoint  = flag.String("endpoint", "", "Custom DynamoDB endpoint (e.g. local)")
	chartPath = flag.String("chart", "", "Write a vendor totals bar chart PNG to this path")
	topN      = flag.Int("top", 0, "Show only the top N vendors (0 = all)")
)

// vendorRow is one line of the totals table, already sorted
type vendorRow struct {
	Vendor string
	Total  decimal.Decimal
}

func main() {
	flag.Parse()

	store, err := dynamostore.NewRecordStore(dynamostore.Config{
		Region:    *region,
		TableName: *tableName,
		Endpoint:  *endpoint,
	})
	if err != nil {
		log.Fatalf("Failed to create record store: %v", err)
	}

	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize record store: %v", err)
	}
	defer store.Close()

	records, err := summary.NewLoader(store).LoadAll(ctx)
	if err != nil {
		log.Fatalf("Failed to load records: %v", err)
	}

	if len(records) == 0 {
		fmt.Println("No transactions yet.")
		return
	}

	stats, err := summary.Summarize(records)
	if err != nil {
		log.Fatalf("Failed to summarize records: %v", err)
	}

	totals, err := summary.VendorTotals(records)
	if err != nil {
		log.Fatalf("Failed to compute vendor totals: %v", err)
	}

	rows := sortedRows(totals)
	if *topN > 0 && *topN < len(rows) {
		rows = rows[:*topN]
	}

	fmt.Printf("%d transactions, total spend $%.2f\n\n", stats.TotalTransactions, stats.TotalAmount)
	renderTable(rows, stats.TotalAmount)

	if *chartPath != "" {
		if err := renderChart(rows, *chartPath); err != nil {
			log.Fatalf("Failed to render chart: %v", err)
		}
		fmt.Printf("\nChart saved to: %s\n", *chartPath)
	}
}

// sortedRows orders vendors by total descending, ties alphabetically.
func sortedRows(totals map[string]decimal.Decimal) []vendorRow {
	rows := make([]vendorRow, 0, len(totals))
	for vendor, total := range totals {
		rows = append(rows, vendorRow{Vendor: vendor, Total: total})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Vendor < rows[j].Vendor
		}
		return rows[i].Total.GreaterThan(rows[j].Total)
	})

	return rows
}

func renderTable(rows []vendorRow, grandTotal float64) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Vendor", "Total ($)", "Share (%)"})

	for _, row := range rows {
		total, _ := row.Total.Float64()
		share := 0.0
		if grandTotal != 0 {
			share = total / grandTotal * 100
		}
		table.Append([]string{
			row.Vendor,
			fmt.Sprintf("%.2f", total),
			fmt.Sprintf("%.1f", share),
		})
	}

	table.Render()
}

func renderChart(rows []vendorRow, outputFile string) error {
	var bars []chart.Value
	for _, row := range rows {
		total, _ := row.Total.Float64()
		bars = append(bars, chart.Value{
			Label: row.Vendor,
			Value: total,
		})
	}

	barChart := chart.BarChart{
		Title: "Spend by Vendor",
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  800,
		Height: 400,
		Bars:   bars,
	}

	barChart.YAxis.ValueFormatter = func(v interface{}) string {
		if vf, isFloat := v.(float64); isFloat {
			return fmt.Sprintf("$%.2f", vf)
		}
		return ""
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return barChart.Render(chart.PNG, f)
}
