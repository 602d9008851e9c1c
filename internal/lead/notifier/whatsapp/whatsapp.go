package whatsapp

import (
	"context"
	"errors"

	"lead-webhook-bridge/internal/lead"
	"lead-webhook-bridge/internal/model"
	"lead-webhook-bridge/pkg/graph"
	pkgLog "lead-webhook-bridge/pkg/log"
)

// placeholder replaces empty template parameters, which the messaging API rejects.
const placeholder = "N/A"

// MessageSender sends template messages. *graph.Client satisfies it.
type MessageSender interface {
	SendTemplateMessage(ctx context.Context, phoneID string, msg graph.TemplateMessage) (*graph.SendMessageResponse, error)
}

// MessageParams are the body parameters of the lead template, in order.
type MessageParams struct {
	Name  string
	Email string
	Phone string
}

// NewMessageParams maps a lead onto template parameters.
func NewMessageParams(l model.Lead) MessageParams {
	return MessageParams{
		Name:  orPlaceholder(l.FullName),
		Email: orPlaceholder(l.Email),
		Phone: orPlaceholder(l.PhoneNumber),
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

type implNotifier struct {
	l       pkgLog.Logger
	sender  MessageSender
	phoneID string
}

// New creates a notifier sending from the business number phoneID.
func New(l pkgLog.Logger, sender MessageSender, phoneID string) lead.Notifier {
	return &implNotifier{
		l:       l,
		sender:  sender,
		phoneID: phoneID,
	}
}

// Notify sends the lead template to every recipient of target in order.
// A failed send does not stop the others.
func (n *implNotifier) Notify(ctx context.Context, target lead.Target, l model.Lead) []lead.SinkResult {
	if target.TemplateName == "" {
		return []lead.SinkResult{{Sink: lead.SinkWhatsApp, Err: lead.ErrMissingTemplate}}
	}
	if len(target.Recipients) == 0 {
		return []lead.SinkResult{{Sink: lead.SinkWhatsApp, Err: lead.ErrNoRecipients}}
	}

	p := NewMessageParams(l)
	results := make([]lead.SinkResult, 0, len(target.Recipients))

	for _, to := range target.Recipients {
		msg := graph.NewTemplateMessage(to, target.TemplateName, target.LanguageCode, p.Name, p.Email, p.Phone)

		res := lead.SinkResult{Sink: lead.SinkWhatsApp, Recipient: to}
		resp, err := n.sender.SendTemplateMessage(ctx, n.phoneID, msg)
		if err != nil {
			var apiErr *graph.APIError
			if errors.As(err, &apiErr) {
				n.l.Errorf(ctx, "whatsapp notifier: send to %s failed: status=%d body=%s", to, apiErr.StatusCode, apiErr.Body)
			} else {
				n.l.Errorf(ctx, "whatsapp notifier: send to %s failed: %v", to, err)
			}
			res.Err = err
		} else {
			n.l.Infof(ctx, "whatsapp notifier: message sent to %s (%s)", to, messageID(resp))
		}
		results = append(results, res)
	}

	return results
}

func messageID(resp *graph.SendMessageResponse) string {
	if resp == nil || len(resp.Messages) == 0 {
		return "no message id"
	}
	return resp.Messages[0].ID
}
