package otp

import (
	"fmt"
	"net/smtp"

	"github.com/khirastore/ecommerce-api/config"
)

// 寄送驗證碼信件
type Mailer interface {
	SendOTP(to, code string) error
}

type SMTPMailer struct {
	config config.SMTPConfig
}

func NewSMTPMailer(config config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{config: config}
}

func (m *SMTPMailer) SendOTP(to, code string) error {
	addr := m.config.Host + ":" + m.config.Port
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your verification code\r\n\r\nYour OTP is %s. It expires in 10 minutes.\r\n",
		m.config.From, to, code,
	)

	return smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(message))
}
