// Package contact builds outbound dial and messaging deep links from lead
// phone numbers.
package contact

import (
	"net/url"
	"strings"
)

func digits(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}

// DialLink builds a tel: link from a free-form phone number.
func DialLink(phone string) string {
	return "tel:" + digits(phone)
}

// WhatsAppLink builds a wa.me deep link with an optional pre-filled message.
func WhatsAppLink(phone, message string) string {
	link := "https://wa.me/" + digits(phone)
	if message != "" {
		// QueryEscape uses '+' for spaces; wa.me expects %20.
		link += "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	}
	return link
}
