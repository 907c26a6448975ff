package vacations

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// RequestPDF renders the printable vacation request form handed to HR.
func RequestPDF(d Detail, companyName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, companyName)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Solicitud de Vacaciones")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Empleado: %s", d.EmployeeName))
	pdf.Ln(6)
	if d.EmployeeCode != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Numero de empleado: %s", d.EmployeeCode))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Tipo de solicitud: %s", kindLabel(d.Kind)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Del %s al %s", d.StartDate.Format("02/01/2006"), d.EndDate.Format("02/01/2006")))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Dias solicitados: %.1f", d.RequestedDays))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Estatus: %s", d.Status))
	pdf.Ln(6)
	if d.AdminComment != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Comentario: %s", d.AdminComment))
		pdf.Ln(6)
	}
	pdf.Ln(18)

	pdf.Cell(90, 7, "_______________________")
	pdf.Cell(90, 7, "_______________________")
	pdf.Ln(6)
	pdf.Cell(90, 7, "Firma del empleado")
	pdf.Cell(90, 7, "Firma de autorizacion")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generado el %s", time.Now().Format("02/01/2006 15:04")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func kindLabel(kind string) string {
	switch kind {
	case KindUseDays:
		return "Uso de dias de vacaciones"
	case KindVacationBonus:
		return "Prima vacacional"
	case KindPaternity:
		return "Permiso de paternidad"
	default:
		return kind
	}
}
