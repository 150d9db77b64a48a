package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const welcomeHTML = `<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Welcome to Fresh Basket, {{.Name}}!</h2>
  <p>Your account is ready. Browse the catalog, fill your basket and save
  favourites to your wishlist whenever you like.</p>
  <p>Happy shopping,<br>The Fresh Basket team</p>
</body>
</html>`

var welcomeTpl = template.Must(template.New("welcome").Parse(welcomeHTML))

// RenderWelcome renders the signup welcome email from job data.
// Returns subject, text fallback and HTML body.
func RenderWelcome(data map[string]any) (string, string, string, error) {
	name := fmt.Sprintf("%v", data["Name"])
	if name == "" || name == "<nil>" {
		name = "there"
	}
	var buf bytes.Buffer
	if err := welcomeTpl.Execute(&buf, map[string]string{"Name": name}); err != nil {
		return "", "", "", err
	}
	subject := "Welcome to Fresh Basket"
	text := "Welcome to Fresh Basket, " + name + "! Your account is ready."
	return subject, text, buf.String(), nil
}
