// internal/transport/smtp.go
package transport

import (
    "context"
    "crypto/tls"
    "fmt"
    "net"
    "net/smtp"
    "time"

    appErrors "github.com/unclebandit/automailer-backend/internal/errors"
    "github.com/unclebandit/automailer-backend/internal/model"
)

// Transport delivers one rendered message to one recipient.
type Transport interface {
    Deliver(ctx context.Context, settings model.TransportSettings, to string, msg model.RenderedMessage) error
}

// SMTPTransport submits messages over authenticated SMTP with optional
// STARTTLS. Each delivery opens its own session and releases it on every
// exit path.
type SMTPTransport struct {
    DialTimeout time.Duration
}

func NewSMTPTransport() *SMTPTransport {
    return &SMTPTransport{DialTimeout: 30 * time.Second}
}

func (t *SMTPTransport) Deliver(ctx context.Context, settings model.TransportSettings, to string, msg model.RenderedMessage) error {
    addr := net.JoinHostPort(settings.Host, settings.Port)

    dialer := net.Dialer{Timeout: t.DialTimeout}
    conn, err := dialer.DialContext(ctx, "tcp", addr)
    if err != nil {
        return appErrors.NewDelivery(to, err)
    }

    client, err := smtp.NewClient(conn, settings.Host)
    if err != nil {
        conn.Close()
        return appErrors.NewDelivery(to, err)
    }
    defer client.Close()

    if settings.UseTLS {
        if ok, _ := client.Extension("STARTTLS"); ok {
            if err := client.StartTLS(&tls.Config{ServerName: settings.Host}); err != nil {
                return appErrors.NewDelivery(to, err)
            }
        }
    }

    auth := smtp.PlainAuth("", settings.SenderEmail, settings.Password, settings.Host)
    if ok, _ := client.Extension("AUTH"); ok {
        if err := client.Auth(auth); err != nil {
            return appErrors.NewDelivery(to, err)
        }
    }

    if err := client.Mail(settings.SenderEmail); err != nil {
        return appErrors.NewDelivery(to, err)
    }
    if err := client.Rcpt(to); err != nil {
        return appErrors.NewDelivery(to, err)
    }

    w, err := client.Data()
    if err != nil {
        return appErrors.NewDelivery(to, err)
    }
    if _, err := w.Write(BuildMessage(settings.SenderEmail, to, msg)); err != nil {
        w.Close()
        return appErrors.NewDelivery(to, err)
    }
    if err := w.Close(); err != nil {
        return appErrors.NewDelivery(to, err)
    }

    if err := client.Quit(); err != nil {
        return appErrors.NewDelivery(to, err)
    }
    return nil
}

const mimeBoundary = "automailer-alt-boundary"

// BuildMessage assembles the multipart/alternative wire message with the
// plain-text part first and the HTML part second.
func BuildMessage(from, to string, msg model.RenderedMessage) []byte {
    var b []byte
    b = append(b, fmt.Sprintf("From: %s\r\n", from)...)
    b = append(b, fmt.Sprintf("To: %s\r\n", to)...)
    b = append(b, fmt.Sprintf("Subject: %s\r\n", msg.Subject)...)
    b = append(b, "MIME-Version: 1.0\r\n"...)
    b = append(b, fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", mimeBoundary)...)
    b = append(b, "\r\n"...)

    b = append(b, fmt.Sprintf("--%s\r\n", mimeBoundary)...)
    b = append(b, "Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n"...)
    b = append(b, msg.Text...)
    b = append(b, "\r\n"...)

    b = append(b, fmt.Sprintf("--%s\r\n", mimeBoundary)...)
    b = append(b, "Content-Type: text/html; charset=\"utf-8\"\r\n\r\n"...)
    b = append(b, msg.HTML...)
    b = append(b, "\r\n"...)

    b = append(b, fmt.Sprintf("--%s--\r\n", mimeBoundary)...)
    return b
}
