package printout

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"goodsmile/clinic/domain"
	"goodsmile/clinic/internal/bangla"
)

const utf8Family = "bill"

type labels struct {
	title, tagline, date, patient, mobile, address, age string
	serial, work, amount, subtotal, discount, total     string
	words, farewell                                     string
}

var bengaliLabels = labels{
	title: ClinicName, tagline: Tagline, date: "তারিখ:", patient: "রোগীর নাম:", mobile: "মোবাইল:",
	address: "ঠিকানা:", age: "বয়স:", serial: "ক্রমিক নং", work: "কাজের বিবরণ", amount: "পরিমাণ (৳)",
	subtotal: "মোট:", discount: "ডিসকাউন্ট:", total: "সর্বমোট:", words: "টাকার পরিমাণ (কথায়):",
	farewell: Farewell,
}

var latinLabels = labels{
	title: "Good Smile Dental", tagline: "", date: "Date:", patient: "Patient:", mobile: "Mobile:",
	address: "Address:", age: "Age:", serial: "No.", work: "Work done", amount: "Amount (Tk)",
	subtotal: "Subtotal:", discount: "Discount:", total: "Total:", words: "Amount payable (Tk):",
	farewell: "Thank you, visit again!",
}

// PDFRenderer draws bills with gofpdf. When FontPath names a UTF-8 TrueType
// font with Bengali glyphs, the bill is printed in Bengali. Otherwise a core
// Latin font is used, numbers stay in ASCII digits and the amount in words is
// replaced by the total in figures.
//
// gofpdf does no Indic shaping: vowel signs and conjuncts are drawn in code
// point order, so Bengali text reads slightly out of order even with a
// suitable font. The HTML printout renders correctly.
type PDFRenderer struct {
	FontPath string
}

// Render writes the bill as a single-page A4 PDF.
func (p PDFRenderer) Render(w io.Writer, bill domain.Bill) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	unicode := p.FontPath != ""
	family := "Helvetica"
	l := latinLabels
	if unicode {
		pdf.AddUTF8Font(utf8Family, "", p.FontPath)
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("load bill font %s: %w", p.FontPath, err)
		}
		family = utf8Family
		l = bengaliLabels
	}
	text := func(s string) string {
		if unicode {
			return s
		}
		return latin(s)
	}
	money := func(d decimal.Decimal) string {
		if unicode {
			return bangla.FormatAmount(d)
		}
		return bangla.ASCIIDigits(bangla.FormatAmount(d))
	}
	num := func(s string) string {
		if unicode {
			return bangla.Digits(s)
		}
		return s
	}

	pdf.SetFont(family, "", 18)
	pdf.CellFormat(0, 10, l.title, "", 1, "C", false, 0, "")
	if l.tagline != "" {
		pdf.SetFont(family, "", 10)
		pdf.CellFormat(0, 6, l.tagline, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(family, "", 11)
	header := [][2]string{
		{l.date, num(bill.Date)},
		{l.patient, text(bill.PatientName)},
		{l.mobile, text(bill.MobileNumber)},
		{l.address, text(bill.Address)},
		{l.age, text(bill.Age)},
	}
	for _, row := range header {
		pdf.CellFormat(30, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	widths := []float64{20, 115, 45}
	pdf.CellFormat(widths[0], 8, l.serial, "1", 0, "C", false, 0, "")
	pdf.CellFormat(widths[1], 8, l.work, "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[2], 8, l.amount, "1", 1, "R", false, 0, "")
	for i, item := range bill.Items {
		pdf.CellFormat(widths[0], 8, num(strconv.Itoa(i+1)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 8, text(item.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, money(item.Cost), "1", 1, "R", false, 0, "")
	}
	totals := [][2]string{
		{l.subtotal, money(bill.Subtotal)},
		{l.discount, money(bill.Discount)},
		{l.total, money(bill.TotalAmount)},
	}
	for _, row := range totals {
		pdf.CellFormat(widths[0]+widths[1], 8, row[0], "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 8, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	if line := amountLine(l, bill, unicode); line != "" {
		pdf.MultiCell(0, 7, line, "", "L", false)
	}
	pdf.Ln(8)
	pdf.SetFont(family, "", 9)
	pdf.CellFormat(0, 6, l.farewell, "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write bill pdf: %w", err)
	}
	return nil
}

// amountLine is the closing amount line: the words in Bengali mode, the
// total in ASCII figures with the core font.
func amountLine(l labels, bill domain.Bill, unicode bool) string {
	if !unicode {
		return l.words + " " + bangla.ASCIIDigits(bangla.FormatAmount(bill.TotalAmount))
	}
	if bill.AmountInWords == "" {
		return ""
	}
	return l.words + " " + bill.AmountInWords
}

// latin replaces runes the core fonts cannot draw. Bengali digits are mapped
// to ASCII first so amounts and dates survive.
func latin(s string) string {
	s = bangla.ASCIIDigits(s)
	var b strings.Builder
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}
