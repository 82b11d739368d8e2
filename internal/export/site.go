package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/guttosm/tradepulse/internal/domain/models"
	"github.com/guttosm/tradepulse/internal/logger"
	"github.com/guttosm/tradepulse/internal/web"
)

// File names inside an exported site.
const (
	IndexFile    = "index.html"
	WorkbookFile = "tradepulse.xlsx"
	ChartsDir    = "charts"
)

// ChartFile returns the file name of an artifact inside ChartsDir.
func ChartFile(a models.Artifact) string {
	if a.Kind == models.KindFigure {
		return a.ID + ".json"
	}
	return a.ID + ".png"
}

// WriteSite writes a self-contained copy of the dashboard into dir: the page,
// every chart artifact and the workbook.
func WriteSite(dir string, d *models.Dashboard) error {
	chartsDir := filepath.Join(dir, ChartsDir)
	if err := os.MkdirAll(chartsDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", chartsDir, err)
	}

	for _, a := range d.Charts {
		path := filepath.Join(chartsDir, ChartFile(a))
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	page := web.NewPage(d, func(a models.Artifact) string {
		return ChartsDir + "/" + ChartFile(a)
	}, web.DefaultPreviewRows, "")
	if err := writeFile(filepath.Join(dir, IndexFile), func(f *os.File) error { return web.Render(f, page) }); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, WorkbookFile), func(f *os.File) error { return WriteWorkbook(f, d) }); err != nil {
		return err
	}

	logger.L().Info().Str("dir", dir).Int("charts", len(d.Charts)).Msg("dashboard exported")
	return nil
}

func writeFile(path string, fill func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fill(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
