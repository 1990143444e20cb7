package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

// Template names understood by the email worker.
const (
	ConfirmEmail  = "confirm_email"
	ResetPassword = "reset_password"
	TestEmail     = "test_email"
)

var subjects = map[string]string{
	ConfirmEmail:  "%s - Verification link",
	ResetPassword: "%s - Password recovery",
	TestEmail:     "%s - Test email",
}

// Subject returns the subject line for a template, branded with the project
// name carried in the job data.
func Subject(name, projectName string) string {
	f, ok := subjects[name]
	if !ok {
		return projectName + " - Notification"
	}
	return fmt.Sprintf(f, projectName)
}

// RenderHTML renders the named template with the given data.
func RenderHTML(name string, data map[string]any) (string, error) {
	t, err := htmpl.ParseFS(FS, name+".tmpl")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
