package service

import (
	"github.com/guttosm/tradepulse/internal/analytics"
	"github.com/guttosm/tradepulse/internal/domain/models"
	"github.com/guttosm/tradepulse/internal/render"
)

// Block aggregates the table for one chart and renders it.
type Block struct {
	ID     string
	Title  string
	Kind   models.ArtifactKind
	Render func(t *models.Table) ([]byte, error)
}

// ContentType returns the MIME type of the block's artifact.
func (b Block) ContentType() string {
	if b.Kind == models.KindFigure {
		return render.ContentTypeJSON
	}
	return render.ContentTypePNG
}

const (
	topProducts   = 10
	histogramBins = 20
)

var correlationVars = []string{"Quantity", "Value", "Weight"}

// Catalog returns the dashboard charts in display order.
func Catalog() []Block {
	return []Block{
		{
			ID:    "value_by_category",
			Title: "Box Plot of Transaction Values by Category",
			Kind:  models.KindImage,
			Render: func(t *models.Table) ([]byte, error) {
				g := analytics.GroupValues(t, analytics.Category, analytics.Value)
				return render.BoxPlot("Box Plot of Transaction Values by Category", "Category", "Value", g)
			},
		},
		{
			ID:    "transactions_by_country",
			Title: "Number of Transactions by Country",
			Kind:  models.KindImage,
			Render: func(t *models.Table) ([]byte, error) {
				keys, vals := countSeries(analytics.ValueCounts(t, analytics.Country))
				return render.BarChart("Number of Transactions by Country", "Country", "count", keys, vals, render.BarsSolid, 90)
			},
		},
		{
			ID:    "transactions_over_time",
			Title: "Transactions Over Time",
			Kind:  models.KindImage,
			Render: func(t *models.Table) ([]byte, error) {
				return render.TimeLine("Transactions Over Time", "YearMonth", "", analytics.MonthlyCounts(t))
			},
		},
		{
			ID:    "imports_vs_exports",
			Title: "Imports vs Exports",
			Kind:  models.KindImage,
			Render: func(t *models.Table) ([]byte, error) {
				counts := analytics.ValueCounts(t, analytics.ImportExport)
				return render.Pie("Imports vs Exports", counts, analytics.Percentages(counts))
			},
		},
		{
			ID:    "import_export_by_country",
			Title: "Imports and Exports by Country",
			Kind:  models.KindImage,
			Render: func(t *models.Table) ([]byte, error) {
				return render.StackedBar("Imports and Exports by Country", analytics.CrossTabulate(t, analytics.Country, analytics.ImportExport))
			},
		},
		{
			ID:    "top_products_by_value",
			Title: "Top 10 Products by Trade Value",
			Kind:  models.KindImage,
			Render: func(t *models.Table) ([]byte, error) {
				top := analytics.TopN(analytics.SumBy(t, analytics.Product, analytics.Value), topProducts)
				keys, vals := sumSeries(top)
				return render.BarChart("Top 10 Products by Trade Value", "Product", "Value", keys, vals, render.BarsRocket, 45)
			},
		},
		{
			ID:    "weight_vs_value",
			Title: "Weight vs Value of Transactions (by Shipping Method)",
			Kind:  models.KindImage,
			Render: func(t *models.Table) ([]byte, error) {
				g := analytics.GroupPairs(t, analytics.ShippingMethod, analytics.Weight, analytics.Value)
				return render.Scatter("Weight vs Value of Transactions (by Shipping Method)", "Weight", "Value", g)
			},
		},
		{
			ID:    "weight_distribution",
			Title: "Distribution of Transaction Weights with Multiple Colors",
			Kind:  models.KindImage,
			Render: func(t *models.Table) ([]byte, error) {
				h, err := analytics.HistogramOf(analytics.Column(t, analytics.Weight), histogramBins)
				if err != nil {
					return nil, err
				}
				return render.HistogramBars("Distribution of Transaction Weights with Multiple Colors", "Weight", "", h)
			},
		},
		{
			ID:    "transactions_by_payment_terms",
			Title: "Number of Transactions by Payment Terms",
			Kind:  models.KindImage,
			Render: func(t *models.Table) ([]byte, error) {
				keys, vals := countSeries(analytics.ValueCounts(t, analytics.PaymentTerms))
				return render.BarChart("Number of Transactions by Payment Terms", "Payment_Terms", "count", keys, vals, render.BarsMako, 45)
			},
		},
		{
			ID:    "correlation_heatmap",
			Title: "Correlation Heatmap of Trade Variables",
			Kind:  models.KindImage,
			Render: func(t *models.Table) ([]byte, error) {
				c := analytics.Correlate(t, correlationVars, []analytics.Measure{analytics.Quantity, analytics.Value, analytics.Weight})
				return render.Heatmap("Correlation Heatmap of Trade Variables", c)
			},
		},
		{
			ID:    "trade_volume_by_country",
			Title: "Trade Volume by Country",
			Kind:  models.KindFigure,
			Render: func(t *models.Table) ([]byte, error) {
				return render.Choropleth("Trade Volume by Country", "Value", analytics.SumBy(t, analytics.Country, analytics.Value))
			},
		},
		{
			ID:    "trade_volume_by_product",
			Title: "Trade Volume by Product",
			Kind:  models.KindFigure,
			Render: func(t *models.Table) ([]byte, error) {
				return render.Treemap("Trade Volume by Product", analytics.SumBy(t, analytics.Product, analytics.Value))
			},
		},
		{
			ID:    "weight_by_shipping_method",
			Title: "Weight Distribution by Shipping Method",
			Kind:  models.KindFigure,
			Render: func(t *models.Table) ([]byte, error) {
				g := analytics.GroupValues(t, analytics.ShippingMethod, analytics.Weight)
				return render.Violin("Weight Distribution by Shipping Method", "Shipping_Method", "Weight", g)
			},
		},
	}
}

func countSeries(counts []models.Count) ([]string, []float64) {
	keys := make([]string, len(counts))
	vals := make([]float64, len(counts))
	for i, c := range counts {
		keys[i], vals[i] = c.Key, float64(c.N)
	}
	return keys, vals
}

func sumSeries(sums []models.GroupSum) ([]string, []float64) {
	keys := make([]string, len(sums))
	vals := make([]float64, len(sums))
	for i, s := range sums {
		keys[i], vals[i] = s.Key, s.Sum
	}
	return keys, vals
}
