package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const qrInlineID = "ticket-qr"

var confirmationTmpl = template.Must(template.New("confirmation").Funcs(tmplFuncs).Parse(`<!doctype html>
<html lang="fr">
<body style="font-family:Arial,sans-serif;color:#111">
  <h1>Inscription confirmée</h1>
  <p>Bonjour{{if .FullName}} {{.FullName}}{{end}},</p>
  <p>Ton inscription à <strong>{{.EventTitle}}</strong> est confirmée.</p>
  <table cellpadding="4">
    <tr><td>Date</td><td>{{date .EventDate}}</td></tr>
    <tr><td>Lieu</td><td>{{.EventLocation}}</td></tr>
    <tr><td>Billet</td><td>{{.TicketName}}</td></tr>
    <tr><td>Montant</td><td>{{money .AmountTotal .Currency}}</td></tr>
  </table>
  {{if .PendingReview}}<p>Ton justificatif doit encore être validé par notre équipe.</p>{{end}}
  <p>Présente ce QR code à l'accueil le jour de la course :</p>
  <img src="cid:{{.InlineID}}" alt="QR code" width="240" height="240">
  <p>Référence : {{.QRCodeToken}}</p>
</body>
</html>`))

var digestTmpl = template.Must(template.New("digest").Funcs(tmplFuncs).Parse(`<!doctype html>
<html lang="fr">
<body style="font-family:Arial,sans-serif;color:#111">
  <h1>{{len .Items}} justificatif(s) en attente</h1>
  <table cellpadding="4" border="1" style="border-collapse:collapse">
    <tr><th>#</th><th>Événement</th><th>Billet</th><th>Email</th><th>Document</th><th>Depuis</th></tr>
    {{range .Items}}<tr>
      <td>{{.RegistrationID}}</td><td>{{.EventTitle}}</td><td>{{.TicketName}}</td>
      <td>{{.Email}}</td><td><a href="{{.DocumentURL}}">voir</a></td><td>{{date .UpdatedAt}}</td>
    </tr>{{end}}
  </table>
</body>
</html>`))

var tmplFuncs = template.FuncMap{
	"date":  func(t time.Time) string { return t.Format("02/01/2006 15:04") },
	"money": formatMoney,
}

func formatMoney(minor int64, currency string) string {
	return fmt.Sprintf("%s %s", decimal.New(minor, -2).StringFixed(2), strings.ToUpper(currency))
}

func renderConfirmation(c Confirmation) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Confirmation
		InlineID string
	}{c, qrInlineID}
	if err := confirmationTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return buf.String(), nil
}

// DigestItem is one pending document awaiting admin review.
type DigestItem struct {
	RegistrationID uint
	EventTitle     string
	TicketName     string
	Email          string
	DocumentURL    string
	UpdatedAt      time.Time
}

func renderDigest(items []DigestItem) (string, error) {
	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, struct{ Items []DigestItem }{items}); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return buf.String(), nil
}
