package notifier

import (
	"bytes"
	"encoding/csv"
	"html/template"

	"github.com/amishk599/jobwatch/internal/model"
)

// bodyTemplate renders one card per listing. Inline styles only; mail clients
// strip <style> in the head inconsistently.
const bodyTemplate = `<html>
<body style="font-family: Arial, sans-serif; color: #111;">
  <h2>New Amazon job listings</h2>
  <p>{{len .}} new listing{{if gt (len .) 1}}s{{end}} since the last check.</p>
  {{range .}}
  <div style="margin: 20px 0; padding: 15px; border: 1px solid #ddd; border-radius: 5px;">
    <div style="color: #232f3e; font-size: 18px; font-weight: bold;">{{.Title}}</div>
    <div style="margin: 10px 0;">
      <p><strong>Location:</strong> {{.Location}}</p>
      {{if .PostedAt}}<p><strong>Posted:</strong> {{.PostedAt.Format "January 2, 2006"}}</p>{{end}}
      {{if .Level}}<p><strong>Level:</strong> {{.Level}}</p>{{end}}
      {{if .Qualifications}}<p><strong>Basic qualifications:</strong> {{.Qualifications}}</p>{{end}}
    </div>
    <a href="{{.URL}}" style="background-color: #ff9900; color: white; padding: 10px 20px; text-decoration: none; border-radius: 3px; display: inline-block;">Apply</a>
  </div>
  {{end}}
</body>
</html>`

var bodyTmpl = template.Must(template.New("body").Parse(bodyTemplate))

// renderHTML produces the email body for the given listings.
func renderHTML(listings []model.Listing) (string, error) {
	var buf bytes.Buffer
	if err := bodyTmpl.Execute(&buf, listings); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderCSV produces the attachment: one row per listing, same fields as the
// HTML body, for people who want to sort or archive.
func renderCSV(listings []model.Listing) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Title", "Location", "Posted", "Level", "ID", "Link"}); err != nil {
		return nil, err
	}
	for _, l := range listings {
		posted := ""
		if l.PostedAt != nil {
			posted = l.PostedAt.Format("2006-01-02")
		}
		if err := w.Write([]string{l.Title, l.Location, posted, l.Level, l.ID, l.URL}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SendTestMessage sends a dummy listing through the notifier to verify the
// mail account and recipients are wired correctly.
func SendTestMessage(n model.Notifier) error {
	test := model.Listing{
		ID:       "test-001",
		Title:    "Test Notification — Delivery Verified",
		Location: "Everywhere",
		URL:      "https://www.amazon.jobs/en/search",
		Level:    "4",
	}
	return n.Notify([]model.Listing{test})
}
