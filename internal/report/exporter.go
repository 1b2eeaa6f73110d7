package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/conteudoflow/os-tracker/internal/domain/entity"
)

// BoardExporter renders the work order board as an Excel workbook.
type BoardExporter struct {
	logger *zap.Logger
}

// NewBoardExporter creates a new board exporter
func NewBoardExporter(logger *zap.Logger) *BoardExporter {
	return &BoardExporter{logger: logger}
}

var boardHeaders = []string{
	"ID", "Título", "Marca", "Status", "Prioridade", "Objetivo", "Tipo",
	"Canais", "Responsável", "Prazo SLA", "Data de Publicação", "Criada em",
}

// Export writes the work orders as a single-sheet workbook. Rows keep the
// order they were given in.
func (e *BoardExporter) Export(orders []*entity.WorkOrder, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Ordens de Serviço"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range boardHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell: %w", err)
		}
	}

	for i, os := range orders {
		row := i + 2
		values := []interface{}{
			os.ID,
			os.Titulo,
			os.Marca,
			string(os.Status),
			string(os.Prioridade),
			string(os.Objetivo),
			string(os.Tipo),
			strings.Join(os.Canais, ", "),
			os.ResponsavelAtual,
			formatTime(os.PrazoSLA),
			formatTime(os.DataPublicacao),
			os.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set cell: %w", err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		e.logger.Error("Failed to write board export", zap.Error(err))
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info("Board exported", zap.Int("orders", len(orders)))
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
