package views

import (
	"fmt"
	"strconv"

	"github.com/san-kum/eigenmap/internal/linmap"
)

// DisplayDigits is the rounding applied to matrix cells for display.
const DisplayDigits = 3

// Placeholder is shown instead of a cell when A is undefined.
const Placeholder = "—"

// MatrixDisplay is A rounded for display, or an undefined placeholder.
type MatrixDisplay struct {
	Defined bool
	Cells   linmap.Mat2
}

func NewMatrixDisplay(a *linmap.Mat2) MatrixDisplay {
	if a == nil {
		return MatrixDisplay{}
	}
	return MatrixDisplay{Defined: true, Cells: a.Round(DisplayDigits)}
}

// Rows returns the cell text row by row.
func (d MatrixDisplay) Rows() [2][2]string {
	var rows [2][2]string
	for i := range rows {
		for j := range rows[i] {
			if !d.Defined {
				rows[i][j] = Placeholder
				continue
			}
			rows[i][j] = strconv.FormatFloat(d.Cells[i][j], 'f', -1, 64)
		}
	}
	return rows
}

func (d MatrixDisplay) String() string {
	r := d.Rows()
	return fmt.Sprintf("[%8s %8s]\n[%8s %8s]", r[0][0], r[0][1], r[1][0], r[1][1])
}
