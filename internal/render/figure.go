package render

import (
	"encoding/json"
	"fmt"

	"github.com/guttosm/tradepulse/internal/domain/models"
)

// Figure is a Plotly figure: traces plus layout, drawn client side by plotly.js.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is the subset of Plotly trace attributes the dashboard emits.
type Trace struct {
	Type          string    `json:"type"`
	Name          string    `json:"name,omitempty"`
	Locations     []string  `json:"locations,omitempty"`
	LocationMode  string    `json:"locationmode,omitempty"`
	Z             []float64 `json:"z,omitempty"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
	ColorScale    string    `json:"colorscale,omitempty"`
	ColorBar      *ColorBar `json:"colorbar,omitempty"`
	IDs           []string  `json:"ids,omitempty"`
	Labels        []string  `json:"labels,omitempty"`
	Parents       []string  `json:"parents,omitempty"`
	Values        []float64 `json:"values,omitempty"`
	BranchValues  string    `json:"branchvalues,omitempty"`
	X             []string  `json:"x,omitempty"`
	Y             []float64 `json:"y,omitempty"`
	Box           *Visible  `json:"box,omitempty"`
	ScaleGroup    string    `json:"scalegroup,omitempty"`
	Marker        *Marker   `json:"marker,omitempty"`
	ShowLegend    *bool     `json:"showlegend,omitempty"`
	Geo           string    `json:"geo,omitempty"`
}

// ColorBar titles the continuous colour scale.
type ColorBar struct {
	Title Title `json:"title"`
}

// Visible toggles a sub-plot such as the box inside a violin.
type Visible struct {
	Visible bool `json:"visible"`
}

// Marker sets trace colours.
type Marker struct {
	Color string `json:"color,omitempty"`
}

// Title is a Plotly title object.
type Title struct {
	Text string `json:"text"`
}

// Layout is the figure layout.
type Layout struct {
	Title      Title          `json:"title"`
	Geo        map[string]any `json:"geo,omitempty"`
	XAxis      map[string]any `json:"xaxis,omitempty"`
	YAxis      map[string]any `json:"yaxis,omitempty"`
	ViolinMode string         `json:"violinmode,omitempty"`
	Legend     map[string]any `json:"legend,omitempty"`
	Margin     map[string]int `json:"margin,omitempty"`
}

// Choropleth shades countries, matched by name, by their summed value.
func Choropleth(title, measure string, sums []models.GroupSum) ([]byte, error) {
	if len(sums) == 0 {
		return nil, ErrNoData
	}
	tr := Trace{
		Type:          "choropleth",
		LocationMode:  "country names",
		ColorScale:    "Plasma",
		ColorBar:      &ColorBar{Title: Title{Text: measure}},
		HoverTemplate: "<b>%{location}</b><br>" + measure + "=%{z}<extra></extra>",
		Geo:           "geo",
	}
	for _, s := range sums {
		tr.Locations = append(tr.Locations, s.Key)
		tr.Z = append(tr.Z, s.Sum)
	}
	return encodeFigure(Figure{
		Data: []Trace{tr},
		Layout: Layout{
			Title:  Title{Text: title},
			Geo:    map[string]any{"showframe": false, "projection": map[string]string{"type": "natural earth"}},
			Margin: map[string]int{"t": 60, "l": 0, "r": 0, "b": 0},
		},
	})
}

// Treemap sizes one rectangle per key by its summed value.
func Treemap(title string, sums []models.GroupSum) ([]byte, error) {
	if len(sums) == 0 {
		return nil, ErrNoData
	}
	tr := Trace{
		Type:          "treemap",
		BranchValues:  "total",
		HoverTemplate: "%{label}<br>%{value}<extra></extra>",
	}
	for _, s := range sums {
		tr.IDs = append(tr.IDs, s.Key)
		tr.Labels = append(tr.Labels, s.Key)
		tr.Parents = append(tr.Parents, "")
		tr.Values = append(tr.Values, s.Sum)
	}
	return encodeFigure(Figure{
		Data:   []Trace{tr},
		Layout: Layout{Title: Title{Text: title}, Margin: map[string]int{"t": 60, "l": 25, "r": 25, "b": 25}},
	})
}

// Violin draws one violin per group with a box plot inside.
func Violin(title, xLabel, yLabel string, g models.Groups) ([]byte, error) {
	if len(g.Keys) == 0 {
		return nil, ErrNoData
	}
	fig := Figure{
		Layout: Layout{
			Title:      Title{Text: title},
			XAxis:      map[string]any{"title": map[string]string{"text": xLabel}, "type": "category"},
			YAxis:      map[string]any{"title": map[string]string{"text": yLabel}},
			ViolinMode: "group",
		},
	}
	off := false
	for i, key := range g.Keys {
		x := make([]string, len(g.Values[i]))
		for j := range x {
			x[j] = key
		}
		fig.Data = append(fig.Data, Trace{
			Type:       "violin",
			Name:       key,
			X:          x,
			Y:          g.Values[i],
			Box:        &Visible{Visible: true},
			ScaleGroup: key,
			Marker:     &Marker{Color: "#636efa"},
			ShowLegend: &off,
		})
	}
	return encodeFigure(fig)
}

func encodeFigure(f Figure) ([]byte, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode figure: %w", err)
	}
	return b, nil
}
