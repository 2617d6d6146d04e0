package billing

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"tailorshop/internal/models"
)

// Render modes. PDF is not a separate encoding: the document is the
// same HTML with a "Save as PDF" hint, printed through the browser.
const (
	ModePrint = "print"
	ModePDF   = "pdf"
)

// invoiceView is one <section> of the printable document, with every
// money field preformatted.
type invoiceView struct {
	ShopName    string
	ShopAddress string
	ShopPhone   string
	ShopGSTIN   string
	LogoSrc     template.URL
	InvoiceNo   string
	Date        string
	Annotation  string
	Customer    string
	Phone       string
	DressType   string
	Status      string
	Subtotal    string
	Paid        string
	Due         string
	ApplyTax    bool
	CGSTLabel   string
	SGSTLabel   string
	CGSTValue   string
	SGSTValue   string
	GrandTotal  string
}

// Free text flows through html/template, which escapes ampersands,
// angle brackets and quotes per context. The logo is the one field
// passed as a URL type so data: logos survive; it is still
// attribute-escaped.
var invoiceTmpl = template.Must(template.New("invoice").Parse(`<html>
  <head>
    <title>Billing Invoice</title>
    <style>
      body { font-family: Arial, sans-serif; padding: 28px; color: #111827; }
      h2 { margin: 0; }
      .muted { color: #6b7280; margin-bottom: 20px; }
      .box { border: 1px solid #d1d5db; border-radius: 8px; padding: 16px; }
      .row { display: flex; justify-content: space-between; padding: 8px 0; border-bottom: 1px solid #f1f5f9; }
      .row:last-child { border-bottom: none; }
      .header { display: flex; justify-content: space-between; align-items: start; margin-bottom: 16px; }
      .meta { margin-top: 8px; font-size: 14px; color: #475569; line-height: 1.4; }
      .logo { max-height: 72px; max-width: 160px; object-fit: contain; }
      .total { font-size: 22px; font-weight: 700; }
      .invoice { margin-bottom: 26px; }
      .invoice + .invoice { page-break-before: always; }
    </style>
  </head>
  <body>
{{- range . }}
    <section class="invoice">
      <div class="header">
        <div>
          <h2>{{ .ShopName }}</h2>
          <div class="meta">
            {{ .ShopAddress }}<br />
            Phone: {{ .ShopPhone }}<br />
            {{ if .ShopGSTIN }}GSTIN: {{ .ShopGSTIN }}{{ end }}
          </div>
        </div>
        {{ if .LogoSrc }}<img class="logo" src="{{ .LogoSrc }}" alt="Shop Logo" />{{ end }}
      </div>
      <div class="muted">Invoice {{ .InvoiceNo }} | Date: {{ .Date }}{{ .Annotation }}</div>
      <div class="box">
        <div class="row"><span>Customer</span><strong>{{ .Customer }}</strong></div>
        <div class="row"><span>Phone</span><strong>{{ .Phone }}</strong></div>
        <div class="row"><span>Dress Type</span><strong>{{ .DressType }}</strong></div>
        <div class="row"><span>Status</span><strong>{{ .Status }}</strong></div>
        <div class="row"><span>Subtotal</span><strong>{{ .Subtotal }}</strong></div>
        <div class="row"><span>Paid Amount</span><strong>{{ .Paid }}</strong></div>
        <div class="row"><span>Due Amount</span><strong>{{ .Due }}</strong></div>
        {{ if .ApplyTax }}<div class="row"><span>{{ .CGSTLabel }}</span><strong>{{ .CGSTValue }}</strong></div>
        <div class="row"><span>{{ .SGSTLabel }}</span><strong>{{ .SGSTValue }}</strong></div>{{ end }}
        <div class="row total"><span>Total Amount</span><span>{{ .GrandTotal }}</span></div>
      </div>
    </section>
{{- end }}
  </body>
</html>
`))

// FormatINR renders a rupee amount with Indian digit grouping
// (last three digits, then pairs): 1234567.5 -> "₹12,34,567.50".
func FormatINR(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	var grouped string
	if len(intPart) <= 3 {
		grouped = intPart
	} else {
		head := intPart[:len(intPart)-3]
		tail := intPart[len(intPart)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		parts = append([]string{head}, parts...)
		grouped = strings.Join(parts, ",") + "," + tail
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return sign + "₹" + grouped + "." + frac
}

// formatPercent drops trailing zeros so a 5% rate splits into "2.5%" halves.
func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

func orEmpty(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// buildInvoiceView assembles one printable section for an order.
func buildInvoiceView(o models.OrderWithCustomer, customers map[uint]models.Customer, settings models.BillingSettings, mode string, now time.Time) invoiceView {
	cust, known := customers[o.CustomerID]

	name := strings.TrimSpace(o.CustomerName)
	if name == "" && known {
		name = cust.Name
	}
	if name == "" {
		name = fmt.Sprintf("ID %d", o.CustomerID)
	}

	phone := strings.TrimSpace(o.CustomerPhone)
	if phone == "" && known {
		phone = cust.Phone
	}

	amount := o.Price
	var taxValue float64
	if settings.ApplyTax {
		taxValue = amount * settings.TaxPercent / 100
	}
	half := formatPercent(settings.TaxPercent / 2)

	logo := settings.LogoData
	if logo == "" {
		logo = settings.LogoURL
	}

	annotation := ""
	if mode == ModePDF {
		annotation = " | Use destination: Save as PDF"
	}

	return invoiceView{
		ShopName:    settings.ShopName,
		ShopAddress: settings.ShopAddress,
		ShopPhone:   settings.ShopPhone,
		ShopGSTIN:   settings.ShopGSTIN,
		LogoSrc:     template.URL(logo),
		InvoiceNo:   InvoiceNumber(o.Order, settings.InvoicePrefix, now),
		Date:        orEmpty(OrderDate(o.Order), "-"),
		Annotation:  annotation,
		Customer:    name,
		Phone:       orEmpty(phone, "-"),
		DressType:   orEmpty(o.DressType, "-"),
		Status:      orEmpty(o.Status, "Pending"),
		Subtotal:    FormatINR(amount),
		Paid:        FormatINR(o.PaidAmount),
		Due:         FormatINR(o.Order.DueAmount()),
		ApplyTax:    settings.ApplyTax,
		CGSTLabel:   "CGST (" + half + ")",
		SGSTLabel:   "SGST (" + half + ")",
		CGSTValue:   FormatINR(taxValue / 2),
		SGSTValue:   FormatINR(taxValue / 2),
		GrandTotal:  FormatINR(amount + taxValue),
	}
}

// RenderInvoices produces the self-contained printable document for one
// or more orders. Each order gets its own section; sections after the
// first start on a new page when printed.
func RenderInvoices(orders []models.OrderWithCustomer, customers []models.Customer, settings models.BillingSettings, mode string, now time.Time) (string, error) {
	byID := make(map[uint]models.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}

	views := make([]invoiceView, 0, len(orders))
	for _, o := range orders {
		views = append(views, buildInvoiceView(o, byID, settings, mode, now))
	}

	var b strings.Builder
	if err := invoiceTmpl.Execute(&b, views); err != nil {
		return "", err
	}
	return b.String(), nil
}
