package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/fungigrow/storeapi/internal/models"
)

// EmailNotifier sends the new-sale mail to the store owner and the purchase
// confirmation mail to the customer over plain SMTP.
type EmailNotifier struct {
	addr       string
	auth       smtp.Auth
	from       string
	ownerEmail string
}

// NewEmailNotifier creates new EmailNotifier instance
func NewEmailNotifier(host string, port int, user, password, from, ownerEmail string) *EmailNotifier {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, password, host)
	}

	return &EmailNotifier{
		addr:       fmt.Sprintf("%s:%d", host, port),
		auth:       auth,
		from:       from,
		ownerEmail: ownerEmail,
	}
}

// Name identifies the dispatcher in logs
func (en *EmailNotifier) Name() string {
	return "email"
}

// Dispatch sends both mails. The customer mail is skipped when the order has
// no customer email; a failure on either mail fails the dispatch.
func (en *EmailNotifier) Dispatch(ctx context.Context, event models.PaidOrderEvent) error {
	ownerSubject := fmt.Sprintf("¡Nueva Venta en FungiGrow! Orden #%s", event.CommerceOrder)
	ownerBody := "Hola Dueño de FungiGrow,\n\n" +
		"¡Has recibido una nueva orden pagada! Por favor, prepara el pedido para el despacho.\n\n" +
		formatOrderDetails(event) +
		"\nSaludos,\nTu Sistema de Pagos FungiGrow"

	if err := en.send(en.ownerEmail, ownerSubject, ownerBody); err != nil {
		return fmt.Errorf("owner mail: %w", err)
	}

	if event.CustomerEmail == "" {
		return nil
	}

	name := event.ShippingName
	if name == "" {
		name = "Cliente"
	}

	customerSubject := fmt.Sprintf("Confirmación de tu Pedido FungiGrow #%s", event.CommerceOrder)
	customerBody := fmt.Sprintf("Hola %s,\n\n", name) +
		"¡Gracias por tu compra en FungiGrow!\n" +
		"Hemos recibido tu pago y tu pedido está siendo procesado.\n\n" +
		formatOrderDetails(event) +
		"\nPronto recibirás más información sobre el envío.\n\n" +
		"Saludos,\nEl Equipo de FungiGrow"

	if err := en.send(event.CustomerEmail, customerSubject, customerBody); err != nil {
		return fmt.Errorf("customer mail: %w", err)
	}

	return nil
}

func formatOrderDetails(event models.PaidOrderEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID de Orden FungiGrow: %s\n", event.CommerceOrder)
	fmt.Fprintf(&b, "Monto Total: $%d CLP\n", event.Amount)
	fmt.Fprintf(&b, "Fecha del Pedido: %s\n\n", event.PaidAt.Format("02-01-2006 15:04"))

	b.WriteString("Detalles de Envío:\n")
	fmt.Fprintf(&b, "  Nombre: %s\n", orDefault(event.ShippingName))
	fmt.Fprintf(&b, "  RUT: %s\n", orDefault(event.ShippingRUT))
	fmt.Fprintf(&b, "  Dirección: %s\n", orDefault(event.ShippingAddress))
	fmt.Fprintf(&b, "  Comuna: %s\n", orDefault(event.ShippingCommune))
	fmt.Fprintf(&b, "  Región: %s\n", orDefault(event.ShippingRegion))
	fmt.Fprintf(&b, "  Teléfono: %s\n", orDefault(event.ShippingPhone))
	fmt.Fprintf(&b, "  Email Cliente: %s\n", orDefault(event.CustomerEmail))
	return b.String()
}

func orDefault(s string) string {
	if s == "" {
		return "No especificado"
	}
	return s
}

func (en *EmailNotifier) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		en.from, to, subject, body)
	return smtp.SendMail(en.addr, en.auth, en.from, []string{to}, []byte(msg))
}
