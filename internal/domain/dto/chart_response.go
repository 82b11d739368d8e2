package dto

// ChartResponse describes one chart of the dashboard.
//
// Fields match the API contract and may differ from internal domain models.
//   - Position: 1-based display position.
//   - Kind: "image" (PNG) or "figure" (Plotly JSON).
//   - URL: where to fetch the artifact.
type ChartResponse struct {
	Position int    `json:"position" example:"1"`
	ID       string `json:"id" example:"value_by_category"`
	Title    string `json:"title" example:"Box Plot of Transaction Values by Category"`
	Kind     string `json:"kind" example:"image"`
	URL      string `json:"url" example:"/api/v1/charts/value_by_category"`
}

// ChartListResponse is returned by GET /api/v1/charts.
type ChartListResponse struct {
	Fingerprint string          `json:"fingerprint"`
	Rows        int             `json:"rows" example:"15000"`
	Charts      []ChartResponse `json:"charts"`
}

// TableResponse is one page of raw table rows.
type TableResponse struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
	Page   int        `json:"page" example:"1"`
	Size   int        `json:"size" example:"100"`
	Total  int        `json:"total" example:"15000"`
}
