package email

import (
	"bytes"
	"html/template"
)

var verificationTemplate = template.Must(template.New("verification").Parse(`
<h1>Verify Your UWaterloo Review</h1>
<p>Thank you for submitting your co-op review!</p>
<p>Click the link below to verify your submission as a verified Waterloo student:</p>
<a href="{{.VerifyURL}}" style="display: inline-block; padding: 12px 24px; background-color: #D4AF37; color: #000; text-decoration: none; border-radius: 5px; margin: 20px 0;">
  Verify My Review
</a>
<p>Or copy and paste this link into your browser:</p>
<p>{{.VerifyURL}}</p>
<p>This verification helps build trust in our community.</p>
<p>Best regards,<br>The GooseDoor Team</p>
`))

func renderVerificationEmail(verifyURL string) (string, error) {
	var buf bytes.Buffer
	err := verificationTemplate.Execute(&buf, struct {
		VerifyURL string
	}{VerifyURL: verifyURL})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
