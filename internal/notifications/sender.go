package notifications

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	log "github.com/sirupsen/logrus"
)

// DefaultSendTimeout bounds a single failure email.
const DefaultSendTimeout = 10 * time.Second

type mailClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Sender forwards failure notifications to an operations mailbox so that
// errors users saw can be followed up. Mails go out in the background; the
// request that raised the toast never waits on SendGrid.
type Sender struct {
	client  mailClient
	to      string
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewSender(client *sendgrid.Client, opsEmail string) *Sender {
	return &Sender{
		client:  client,
		to:      opsEmail,
		timeout: DefaultSendTimeout,
	}
}

func (s *Sender) Notify(n Notification) {
	if n.Variant != Error {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.SendFailureEmail(ctx, n.Message); err != nil {
			log.Errorf("sending failure email: %v", err)
		}
	}()
}

// Wait blocks until every mail started by Notify has finished.
func (s *Sender) Wait() {
	s.wg.Wait()
}

func (s *Sender) SendFailureEmail(ctx context.Context, message string) error {
	from := mail.NewEmail("Gestão de Cursos", "no-reply@companyemail.com")
	subject := fmt.Sprintf("Falha reportada ao usuário: %s", message)
	to := mail.NewEmail("Operações", s.to)
	plainTextContent := fmt.Sprintf("Um usuário recebeu o aviso de erro: %q.", message)
	htmlContent := fmt.Sprintf("<strong>Aviso de erro:</strong> %s", message)
	email := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	response, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return err
	}

	if response.StatusCode != http.StatusAccepted {
		log.Errorf("failure sending notification email with sendgrid: %v", response.Body)
	}

	return nil
}
