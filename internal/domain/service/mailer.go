package service

import "context"

// AcceptanceMailer invokes the external function that composes and sends the
// acceptance emails to the importer and the winning agent. The core only
// supplies the two identifiers; composition and localization happen remotely.
type AcceptanceMailer interface {
	// SendAcceptanceEmails triggers the email function with the closed bid and
	// the winning offer.
	SendAcceptanceEmails(ctx context.Context, bidID, offerID int64) error
}
