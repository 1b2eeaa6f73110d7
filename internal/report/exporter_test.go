package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/conteudoflow/os-tracker/internal/domain/entity"
)

func TestBoardExporter_Export(t *testing.T) {
	now := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	deadline := now.Add(48 * time.Hour)

	orders := []*entity.WorkOrder{
		{
			ID:               "os-1",
			Titulo:           "Reels sobre autocuidado",
			Marca:            "clinica",
			Status:           entity.OSEdicao,
			Prioridade:       entity.PrioridadeAlta,
			Objetivo:         entity.ObjetivoAtracao,
			Tipo:             entity.TipoEducativo,
			Canais:           []string{"instagram", "tiktok"},
			ResponsavelAtual: "editor-1",
			PrazoSLA:         &deadline,
			CreatedAt:        now,
		},
		{
			ID:        "os-2",
			Titulo:    "Depoimento de paciente",
			Status:    entity.OSRascunho,
			CreatedAt: now,
		},
	}

	var buf bytes.Buffer
	exporter := NewBoardExporter(zap.NewNop())
	require.NoError(t, exporter.Export(orders, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Ordens de Serviço"
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per order")

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Título", rows[0][1])

	assert.Equal(t, "os-1", rows[1][0])
	assert.Equal(t, "Reels sobre autocuidado", rows[1][1])
	assert.Equal(t, "edicao", rows[1][3])
	assert.Equal(t, "instagram, tiktok", rows[1][7])
	assert.Equal(t, deadline.Format("2006-01-02 15:04"), rows[1][9])

	assert.Equal(t, "os-2", rows[2][0])
	assert.Equal(t, "rascunho", rows[2][3])
}

func TestBoardExporter_ExportEmptyBoard(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewBoardExporter(zap.NewNop())
	require.NoError(t, exporter.Export(nil, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Ordens de Serviço")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
