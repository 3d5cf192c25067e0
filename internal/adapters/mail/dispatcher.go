package mail

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"recipeauth/internal/logger"
)

const (
	verificationSubject = "Your Verification Code"

	sendTimeout = 10 * time.Second
)

type message struct {
	to      string
	subject string
	html    string
}

// Dispatcher queues outbound emails and delivers them off the request
// path. A slow or failing provider never stalls signup or resend, send
// failures are logged and dropped.
type Dispatcher struct {
	sender  Sender
	log     logger.Logger
	codeTTL time.Duration

	queue  chan message
	cancel context.CancelFunc
	group  *errgroup.Group
}

func NewDispatcher(sender Sender, log logger.Logger, codeTTL time.Duration, workers, queueSize int) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	d := &Dispatcher{
		sender:  sender,
		log:     log,
		codeTTL: codeTTL,
		queue:   make(chan message, queueSize),
		cancel:  cancel,
		group:   group,
	}

	for range workers {
		group.Go(func() error {
			d.work(ctx)
			return nil
		})
	}

	return d
}

// SendVerificationCode enqueues the code email without blocking. A full
// queue drops the message, the resend endpoint is the recovery.
func (d *Dispatcher) SendVerificationCode(email, code string) {
	html := fmt.Sprintf(
		"<html><body><h2>Your verification code is: <b>%s</b></h2><p>This code expires in %.0f minutes.</p></body></html>",
		code, d.codeTTL.Minutes(),
	)

	msg := message{to: email, subject: verificationSubject, html: html}

	select {
	case d.queue <- msg:
	default:
		d.log.Warn("mail: queue full, dropping message", "to", email)
	}
}

func (d *Dispatcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-d.queue:
			if !ok {
				return
			}

			sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
			if err := d.sender.Send(sendCtx, msg.to, msg.subject, msg.html); err != nil {
				d.log.Error("mail: send failed", "to", msg.to, "error", err)
			}
			cancel()
		}
	}
}

// Close stops the workers. Queued messages not yet picked up are lost.
func (d *Dispatcher) Close() {
	d.cancel()
	_ = d.group.Wait()
}
