package rooms

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/phpdave11/gofpdf"
)

// ExportPDF renders the current room list as a printable PDF and returns
// the document bytes together with a suggested filename.
func (d *Directory) ExportPDF(hotelID string) ([]byte, string, error) {
	state := d.State()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Room List", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "ROOM LIST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Hotel      : "+hotelID)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Generated  : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(40, 8, "Room", "1", 0, "", false, 0, "")
	pdf.CellFormat(70, 8, "Type", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 8, "Price", "1", 0, "", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	for _, room := range state.Rooms {
		price := "-"
		if room.Price != nil {
			price = strconv.FormatFloat(*room.Price, 'f', 2, 64)
		}
		pdf.CellFormat(40, 8, room.RoomNumber, "1", 0, "", false, 0, "")
		pdf.CellFormat(70, 8, room.RoomType, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 8, price, "1", 0, "", false, 0, "")
		pdf.Ln(8)
	}

	if len(state.Rooms) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "No rooms loaded for this hotel.", "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("rooms_%s.pdf", hotelID)
	return buf.Bytes(), filename, nil
}
