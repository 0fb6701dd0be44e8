package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"recruitment-backend/models"

	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templatesFS embed.FS

var errUnknownKind = errors.New("unknown notification kind")

var templateFiles = map[models.NotificationKind]string{
	models.NotificationHrApproved:               "templates/hr-approval.html",
	models.NotificationHrDisapproved:            "templates/hr-approval.html",
	models.NotificationApplicationSubmitted:     "templates/application-submitted.html",
	models.NotificationApplicationStatusChanged: "templates/application-status-changed.html",
	models.NotificationJobClosed:                "templates/job-closed.html",
}

var templates = parseTemplates()

func parseTemplates() map[models.NotificationKind]*template.Template {
	result := make(map[models.NotificationKind]*template.Template, len(templateFiles))
	for kind, file := range templateFiles {
		result[kind] = template.Must(template.ParseFS(templatesFS, "templates/layout.html", file))
	}
	return result
}

type templateData struct {
	AppName    string
	Name       string
	JobTitle   string
	IsApproved bool
	BadgeLabel string
	BadgeColor string
	ReasonText string
}

type content struct {
	Subject string
	Text    string
	HTML    string
}

var statusColors = map[models.ApplicationStatus]string{
	models.ApplicationStatusShortlisted: "#2563eb",
	models.ApplicationStatusRejected:    "#dc2626",
}

func render(appName string, kind models.NotificationKind, data models.NotificationData) (content, error) {
	tpl, ok := templates[kind]
	if !ok {
		return content{}, errUnknownKind
	}
	name := data.Name
	if name == "" {
		name = "Candidate"
	}
	tplData := templateData{
		AppName:  appName,
		Name:     name,
		JobTitle: data.JobTitle,
	}

	result := content{}
	switch kind {
	case models.NotificationHrApproved:
		result.Subject = "Your HR Account Has Been Approved"
		result.Text = fmt.Sprintf("Hi %s, your HR account has been approved by admin. You can now post and manage jobs.", name)
		tplData.IsApproved = true
		tplData.BadgeLabel = "APPROVED"
		tplData.BadgeColor = "#16a34a"
	case models.NotificationHrDisapproved:
		result.Subject = "Your HR Account Has Been Disapproved"
		result.Text = fmt.Sprintf("Hi %s, your HR account has been disapproved by admin. Please contact support/admin for more details.", name)
		tplData.BadgeLabel = "DISAPPROVED"
		tplData.BadgeColor = "#dc2626"
	case models.NotificationApplicationSubmitted:
		result.Subject = "Application Submitted Successfully"
		result.Text = fmt.Sprintf("Hi %s, your application for \"%s\" has been submitted successfully.", name, data.JobTitle)
	case models.NotificationApplicationStatusChanged:
		result.Subject = "Application Status Updated"
		result.Text = fmt.Sprintf("Hi %s, your application status for \"%s\" has been updated to: %s.", name, data.JobTitle, data.Status)
		tplData.BadgeLabel = data.Status.ToUpper()
		tplData.BadgeColor = statusColors[data.Status]
		if tplData.BadgeColor == "" {
			tplData.BadgeColor = "#6366f1"
		}
	case models.NotificationJobClosed:
		result.Subject = "Job Closed Notification"
		result.Text = fmt.Sprintf("Hi %s, the job \"%s\" is now closed because %s.", name, data.JobTitle, data.Reason.ToHuman())
		tplData.ReasonText = data.Reason.ToHuman()
	}

	buf := new(bytes.Buffer)
	if err := tpl.ExecuteTemplate(buf, "layout", tplData); err != nil {
		return content{}, errors.Wrap(err, "failed to render email template")
	}
	result.Subject = fmt.Sprintf("%s | %s", result.Subject, appName)
	result.HTML = buf.String()
	return result, nil
}
