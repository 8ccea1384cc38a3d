package model

import "time"

// MailMessage : письмо в очереди на отправку
type MailMessage struct {
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	HTMLBody  string    `json:"html_body"`
	CreatedAt time.Time `json:"created_at"`
}
