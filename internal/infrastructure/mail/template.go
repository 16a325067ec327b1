package mail

import (
	"html/template"
	"strings"

	"github.com/erp/addrconfirm/internal/domain/businesspartner"
)

var bodyTemplate = template.Must(template.New("confirmation").Parse(`<html>
<body>
<p>Dear{{if .ContactName}} {{.ContactName}}{{end}},</p>
<p>the address data of <b>{{.CompanyName}}</b> changed in our system and needs your confirmation:</p>
<p>
{{if .Address.StreetName}}{{.Address.StreetName}} {{.Address.HouseNumber}}<br>{{end}}
{{if .Address.PostalCode}}{{.Address.PostalCode}} {{end}}{{.Address.CityName}}<br>
{{.Address.Country}}
</p>
<p>Please review the address and confirm it within the next days:</p>
<p><a href="{{.ConfirmationURL}}">Confirm address data</a></p>
<p>If the link has expired, the next address change will send a fresh one.</p>
</body>
</html>
`))

type bodyData struct {
	ContactName     string
	CompanyName     string
	Address         businesspartner.AddressSnapshot
	ConfirmationURL string
}

func renderBody(n businesspartner.Notification) (string, error) {
	data := bodyData{
		ContactName:     contactName(n.Contact),
		CompanyName:     n.Partner.FullName,
		Address:         n.Address,
		ConfirmationURL: n.ConfirmationURL,
	}

	var b strings.Builder
	if err := bodyTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func contactName(contact businesspartner.Record) string {
	name := strings.TrimSpace(contact.FirstName + " " + contact.LastName)
	if name == "" {
		name = strings.TrimSpace(contact.FullName)
	}
	return name
}
