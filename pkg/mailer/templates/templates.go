package templates

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"
)

var welcomeHTML = template.Must(template.New("welcome_html").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #333;">
    <h2>Welcome to the kitchen, {{.Username}}!</h2>
    <p>Your account is ready. Share your first recipe, browse what others are
    cooking, and keep your favorites close.</p>
    <p>Happy cooking!</p>
  </body>
</html>`))

var welcomeText = texttemplate.Must(texttemplate.New("welcome_text").Parse(
	`Welcome to the kitchen, {{.Username}}!

Your account is ready. Share your first recipe, browse what others are
cooking, and keep your favorites close.

Happy cooking!`))

// Render returns subject, text and HTML bodies for the named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case "welcome":
		var tb, hb bytes.Buffer
		if err = welcomeText.Execute(&tb, data); err != nil {
			return
		}
		if err = welcomeHTML.Execute(&hb, data); err != nil {
			return
		}
		return "Welcome aboard", tb.String(), hb.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
