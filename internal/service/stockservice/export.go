package stockservice

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"

	"estoqueti/internal/domain"
)

// CSVHeader é a primeira linha do relatório de movimentações.
const CSVHeader = "Data,Tipo,Material,Quantidade,Responsavel,NotaFiscal,Recebedor"

// ExportCSV gera o relatório das movimentações que atendem ao filtro.
func (s *Service) ExportCSV(ctx context.Context, filter domain.MovementFilter) ([]byte, error) {
	rows, err := s.ListMovements(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := WriteMovementsCSV(&buf, rows); err != nil {
		return nil, repoError(err, "Falha interna ao gerar CSV.")
	}

	s.logger.Info("Relatório CSV gerado.", map[string]interface{}{"rows": len(rows)})
	return buf.Bytes(), nil
}

// WriteMovementsCSV escreve o cabeçalho e uma linha por movimentação, separadas por "\n".
// Apenas a descrição do material vai entre aspas; NF e recebedor ausentes viram "-".
func WriteMovementsCSV(w io.Writer, rows []domain.MovementView) error {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, strings.Join([]string{
			r.Date,
			string(r.Type),
			quote(r.MaterialDescription),
			strconv.Itoa(r.Quantity),
			r.Responsible,
			orDash(r.NF),
			orDash(r.Recipient),
		}, ","))
	}

	_, err := io.WriteString(w, CSVHeader+"\n"+strings.Join(lines, "\n"))
	return err
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
