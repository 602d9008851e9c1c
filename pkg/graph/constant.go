package graph

import "time"

const (
	DefaultBaseURL = "https://graph.facebook.com"
	DefaultTimeout = 30 * time.Second

	MessagingProductWhatsApp = "whatsapp"
	MessageTypeTemplate      = "template"
	ComponentTypeBody        = "body"
	ParameterTypeText        = "text"
)
