package catalog

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/junaidrashid-git/smartcart-api/models"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

var ErrEmptySheet = errors.New("excel file is empty or missing header row")

// ExcelHeaders is the column layout used by both import and export.
var ExcelHeaders = []string{
	"ID", "Name", "Price", "Barcode", "QRCode", "Category", "StockQuantity", "ImageURL", "Description",
}

// ImportReport counts what an import did with each data row.
type ImportReport struct {
	Created int `json:"created_count"`
	Updated int `json:"updated_count"`
	Skipped int `json:"skipped_count"`
}

// ExportExcel renders products as a single-sheet workbook.
func ExportExcel(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, h := range ExcelHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Price.StringFixed(2))
		row.AddCell().SetValue(p.Barcode)
		row.AddCell().SetValue(p.QRCode)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetValue(p.StockQuantity)
		row.AddCell().SetValue(p.ImageURL)
		row.AddCell().SetValue(p.Description)
	}
	return file, nil
}

// WriteExcel streams the export of products to w.
func WriteExcel(w io.Writer, products []models.Product) error {
	file, err := ExportExcel(products)
	if err != nil {
		return err
	}
	return file.Write(w)
}

// ImportExcel upserts every valid row of the first sheet. Rows without a name, with an
// unparseable price or with negative stock are skipped. A single "import" change is
// published once the sheet is processed and at least one row was written.
func ImportExcel(ctx context.Context, store *GormStore, r io.ReaderAt, size int64) (ImportReport, error) {
	var report ImportReport
	xlFile, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return report, err
	}
	if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
		return report, ErrEmptySheet
	}

	sheet := xlFile.Sheets[0]
	for i := 1; i < sheet.MaxRow; i++ {
		product, ok := parseRow(sheet.Rows[i])
		if !ok {
			report.Skipped++
			continue
		}
		created, err := store.upsert(ctx, &product)
		switch {
		case err != nil:
			report.Skipped++
		case created:
			report.Created++
		default:
			report.Updated++
		}
	}
	if report.Created+report.Updated > 0 {
		store.changed("import")
	}
	return report, nil
}

func parseRow(row *xlsx.Row) (models.Product, bool) {
	if row == nil || len(row.Cells) < 3 {
		return models.Product{}, false
	}
	get := func(index int) string {
		if index < len(row.Cells) {
			return strings.TrimSpace(row.Cells[index].String())
		}
		return ""
	}

	name := get(1)
	price, err := decimal.NewFromString(get(2))
	if name == "" || err != nil || price.IsNegative() {
		return models.Product{}, false
	}
	stock := 0
	if s := get(6); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 {
			return models.Product{}, false
		}
		stock = int(f)
	}

	return models.Product{
		ID:            get(0),
		Name:          name,
		Price:         price.Round(2),
		Barcode:       get(3),
		QRCode:        get(4),
		Category:      get(5),
		StockQuantity: stock,
		ImageURL:      get(7),
		Description:   get(8),
	}, true
}
