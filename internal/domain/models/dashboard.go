package models

import "time"

// ArtifactKind tells the page how to embed a chart.
type ArtifactKind string

const (
	// KindImage is a static PNG.
	KindImage ArtifactKind = "image"
	// KindFigure is a Plotly figure (JSON) rendered client side.
	KindFigure ArtifactKind = "figure"
)

// Artifact is one rendered chart.
type Artifact struct {
	ID          string
	Title       string
	Kind        ArtifactKind
	ContentType string
	Data        []byte
}

// Dashboard is the result of one full build: the table, its sample and the
// charts in display order. It is immutable once built.
type Dashboard struct {
	Fingerprint string
	BuiltAt     time.Time
	Table       *Table
	Sample      *Table
	Charts      []Artifact
}

// Chart returns the artifact with the given id.
func (d *Dashboard) Chart(id string) (Artifact, bool) {
	for _, a := range d.Charts {
		if a.ID == id {
			return a, true
		}
	}
	return Artifact{}, false
}

// TablePage is one page of raw table rows. Page is 1-based.
type TablePage struct {
	Header []string
	Rows   [][]string
	Page   int
	Size   int
	Total  int
}
