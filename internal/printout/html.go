// Package printout renders a computed bill for printing.
package printout

import (
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"goodsmile/clinic/domain"
	"goodsmile/clinic/internal/bangla"
)

const (
	ClinicName = "গুড স্মাইল ডেন্টাল"
	Tagline    = "আপনার দাঁতের যত্নে আমরা আছি পাশে"
	Farewell   = "ধন্যবাদ, আবার আসবেন!"
)

var billTemplate = template.Must(template.New("bill").Funcs(template.FuncMap{
	"amount": func(d decimal.Decimal) string { return bangla.FormatAmount(d) },
	"serial": func(i int) string { return bangla.Digits(strconv.Itoa(i + 1)) },
	"digits": bangla.Digits,
}).Parse(`<!DOCTYPE html>
<html lang="bn">
<head>
<meta charset="utf-8">
<title>{{.Clinic}} - বিল</title>
<style>
body { font-family: "Noto Sans Bengali", "SolaimanLipi", sans-serif; max-width: 720px; margin: 24px auto; color: #1f2937; }
h1, .tagline, .farewell { text-align: center; }
table { width: 100%; border-collapse: collapse; margin: 16px 0; }
th, td { border: 1px solid #d1d5db; padding: 6px 12px; }
.num { text-align: right; }
.grand td { font-weight: bold; font-size: 1.1em; }
</style>
</head>
<body>
<h1>{{.Clinic}}</h1>
<p class="tagline">{{.Tagline}}</p>
<p><strong>তারিখ:</strong> {{digits .Bill.Date}}</p>
<p><strong>রোগীর নাম:</strong> {{.Bill.PatientName}}</p>
<p><strong>মোবাইল:</strong> {{.Bill.MobileNumber}}</p>
<p><strong>ঠিকানা:</strong> {{.Bill.Address}}</p>
<p><strong>বয়স:</strong> {{.Bill.Age}}</p>
<table>
<thead><tr><th>ক্রমিক নং</th><th>কাজের বিবরণ</th><th class="num">পরিমাণ (৳)</th></tr></thead>
<tbody>
{{- range $i, $item := .Bill.Items}}
<tr><td>{{serial $i}}</td><td>{{$item.Description}}</td><td class="num">{{amount $item.Cost}} ৳</td></tr>
{{- end}}
</tbody>
<tfoot>
<tr><td colspan="2" class="num">মোট:</td><td class="num">{{amount .Bill.Subtotal}} ৳</td></tr>
<tr><td colspan="2" class="num">ডিসকাউন্ট:</td><td class="num">{{amount .Bill.Discount}} ৳</td></tr>
<tr class="grand"><td colspan="2" class="num">সর্বমোট:</td><td class="num">{{amount .Bill.TotalAmount}} ৳</td></tr>
</tfoot>
</table>
<p><strong>টাকার পরিমাণ (কথায়):</strong> {{.Bill.AmountInWords}}</p>
<p class="farewell">{{.Farewell}}</p>
</body>
</html>
`))

// HTML writes the bill as a standalone printable page.
func HTML(w io.Writer, bill domain.Bill) error {
	data := struct {
		Clinic, Tagline, Farewell string
		Bill                      domain.Bill
	}{ClinicName, Tagline, Farewell, bill}
	if err := billTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render bill html: %w", err)
	}
	return nil
}
