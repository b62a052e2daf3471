package payment

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"guesthouse/internal/repository"
)

const ledgerSheet = "Payments"

var ledgerHeader = []string{
	"Payment ID",
	"Reservation ID",
	"Room ID",
	"Guest ID",
	"Amount",
	"Status",
	"Paid At",
}

var ledgerColumnWidths = []float64{38, 38, 38, 38, 12, 10, 22}

func writeLedger(w io.Writer, rows []repository.LedgerRow) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ledgerSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for col, header := range ledgerHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ledgerSheet, cell, header); err != nil {
			return fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(ledgerSheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("set header style: %w", err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(ledgerSheet, name, name, ledgerColumnWidths[col]); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	for i, r := range rows {
		values := []any{
			r.PaymentID,
			r.ReservationID,
			r.RoomID,
			r.GuestID,
			ledgerAmount(r.Amount),
			r.Status,
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ledgerSheet, cell, &values); err != nil {
			return fmt.Errorf("write ledger row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ledgerAmount writes numeric amounts as numbers so the sheet can sum
// them; anything else is kept as text.
func ledgerAmount(text string) any {
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return v
	}
	return text
}
