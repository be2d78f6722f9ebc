package utils

import (
	"fmt"
	"log"
	"os"

	"farmfresh_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

func smtpClient() (*mail.Client, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, fmt.Errorf("SMTP non configuré")
	}

	return mail.NewClient(host,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
}

func senderAddress() string {
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@farmfresh.local"
	}
	return from
}

// SendContactEmail relaie un message du formulaire de contact vers la boîte
// support. replyTo est l'adresse du visiteur.
func SendContactEmail(name, replyTo, subject, message string) error {
	msg := mail.NewMsg()
	if err := msg.From(senderAddress()); err != nil {
		return err
	}
	if err := msg.To(supportAddress()); err != nil {
		return err
	}
	if err := msg.ReplyTo(replyTo); err != nil {
		return err
	}
	msg.Subject("Contact Form: " + subject)
	msg.SetBodyString(mail.TypeTextHTML, fmt.Sprintf(`
		<h3>Nouveau message du formulaire de contact</h3>
		<p><strong>Nom :</strong> %s</p>
		<p><strong>Email :</strong> %s</p>
		<p><strong>Sujet :</strong> %s</p>
		<p>%s</p>`, name, replyTo, subject, message))

	client, err := smtpClient()
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de contact à", supportAddress())
	return client.DialAndSend(msg)
}

func supportAddress() string {
	to := os.Getenv("SMTP_SUPPORT")
	if to == "" {
		to = "support@farmfresh.local"
	}
	return to
}

// SendFarmerStatusEmail prévient un fermier du résultat de sa demande.
// Best-effort : l'échec est loggé, jamais remonté au client HTTP.
func SendFarmerStatusEmail(farmer models.User, status models.Status) {
	var subject, body string
	switch status {
	case models.StatusApproved:
		subject = "Votre compte vendeur est approuvé"
		body = fmt.Sprintf("<p>Bonjour %s,</p><p>Votre compte vendeur a été approuvé. Vous pouvez maintenant vous connecter et publier vos produits.</p>", farmer.Name)
	case models.StatusRejected:
		subject = "Votre demande de compte vendeur a été refusée"
		body = fmt.Sprintf("<p>Bonjour %s,</p><p>Votre demande de compte vendeur a été refusée. Contactez le support pour plus de détails.</p>", farmer.Name)
	default:
		return
	}

	msg := mail.NewMsg()
	if err := msg.From(senderAddress()); err != nil {
		log.Println("⚠️ Email statut fermier:", err)
		return
	}
	if err := msg.To(farmer.Email); err != nil {
		log.Println("⚠️ Email statut fermier:", err)
		return
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	client, err := smtpClient()
	if err != nil {
		log.Println("⚠️ Email statut fermier:", err)
		return
	}
	if err := client.DialAndSend(msg); err != nil {
		log.Println("⚠️ Envoi email statut fermier:", err)
	}
}
