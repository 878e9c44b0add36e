package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

const resetPasswordHTML = `<!doctype html>
<html>
  <body style="font-family: sans-serif; line-height: 1.5;">
    <h2>Password reset</h2>
    <p>Hi {{.Name}},</p>
    <p>We received a request to reset your password. The link below is valid
    until {{.Expires}} and can be used once:</p>
    <p><a href="{{.ResetURL}}">Reset your password</a></p>
    <p>If you did not request this, you can ignore this email.</p>
  </body>
</html>`

const orderConfirmationHTML = `<!doctype html>
<html>
  <body style="font-family: sans-serif; line-height: 1.5;">
    <h2>Thanks for your order</h2>
    <p>Hi {{.Name}},</p>
    <p>Your order <strong>{{.OrderID}}</strong> has been placed.</p>
    <p>Total charged: {{formatMinor .Total}}</p>
  </body>
</html>`

// formatMinor renders an integer minor-unit amount as a decimal string.
func formatMinor(v any) string {
	var n int64
	switch x := v.(type) {
	case int64:
		n = x
	case int:
		n = int64(x)
	case float64: // JSON round-trip turns numbers into float64
		n = int64(x)
	}
	return fmt.Sprintf("%d.%02d", n/100, n%100)
}

var funcs = template.FuncMap{"formatMinor": formatMinor}

var templates = map[string]*template.Template{
	"reset_password":     template.Must(template.New("reset_password").Funcs(funcs).Parse(resetPasswordHTML)),
	"order_confirmation": template.Must(template.New("order_confirmation").Funcs(funcs).Parse(orderConfirmationHTML)),
}

var subjects = map[string]string{
	"reset_password":     "Reset your password",
	"order_confirmation": "Your order confirmation",
}

// Render produces the subject and HTML body for a named template.
func Render(name string, data map[string]any) (subject, html string, err error) {
	tpl, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return subjects[name], buf.String(), nil
}
