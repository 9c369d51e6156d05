// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package mail

import (
	"fmt"
	"html"
)

// SignupOTP is the one-time code sent before a local account is created.
func SignupOTP(to, code string, validFor string) Message {
	return Message{
		To:      to,
		Subject: "Your Fashion Fiesta verification code",
		Text:    fmt.Sprintf("Your verification code is %s. It expires in %s.", code, validFor),
		HTML: fmt.Sprintf(
			"<p>Your verification code is <strong>%s</strong>.</p><p>It expires in %s.</p>",
			html.EscapeString(code), html.EscapeString(validFor),
		),
	}
}

// DesignerApproved tells an applicant they can now publish products.
func DesignerApproved(to, name, brand string) Message {
	return Message{
		To:      to,
		Subject: "Your designer application was approved",
		Text:    fmt.Sprintf("Hi %s, %s is now a verified designer on Fashion Fiesta.", name, brand),
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p><strong>%s</strong> is now a verified designer on Fashion Fiesta.</p>",
			html.EscapeString(name), html.EscapeString(brand),
		),
	}
}

// DesignerRejected carries the reviewer's reason back to the applicant.
func DesignerRejected(to, name, reason string) Message {
	return Message{
		To:      to,
		Subject: "Update on your designer application",
		Text:    fmt.Sprintf("Hi %s, your designer application was not approved. Reason: %s", name, reason),
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your designer application was not approved.</p><p>Reason: %s</p>",
			html.EscapeString(name), html.EscapeString(reason),
		),
	}
}
