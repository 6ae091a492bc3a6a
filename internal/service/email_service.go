package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/complaint-desk/internal/config"
	"github.com/complaint-desk/internal/models"
)

// 邮件标题
const (
	subjectComplaintCreated = "New Complaint Submitted"
	subjectComplaintStatus  = "Complaint Status Updated"
)

// smtpDeliverFunc 实际投递函数
type smtpDeliverFunc func(cfg *config.EmailConfig, from string, to []string, msg []byte) error

// EmailService 邮件发送服务
type EmailService struct {
	cfg     *config.EmailConfig
	deliver smtpDeliverFunc
	now     func() time.Time
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg, deliver: deliverSMTP, now: time.Now}
}

// Enabled 是否启用邮件发送
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// SendComplaintCreatedEmail 发送新投诉通知
func (s *EmailService) SendComplaintCreatedEmail(to []string, complaint *models.Complaint) error {
	return s.sendHTMLEmail(to, subjectComplaintCreated, buildComplaintCreatedBody(complaint))
}

// SendComplaintStatusEmail 发送投诉状态变更通知
func (s *EmailService) SendComplaintStatusEmail(to []string, complaint *models.Complaint) error {
	return s.sendHTMLEmail(to, subjectComplaintStatus, buildComplaintStatusBody(complaint, s.now()))
}

func (s *EmailService) sendHTMLEmail(to []string, subject, body string) error {
	if !s.Enabled() {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	recipients := make([]string, 0, len(to))
	for _, addr := range to {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		if _, err := mail.ParseAddress(addr); err != nil {
			return ErrInvalidEmail
		}
		recipients = append(recipients, addr)
	}
	if len(recipients) == 0 {
		return ErrEmailRecipientEmpty
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, recipients, subject, body)
	return normalizeEmailSendError(s.deliver(s.cfg, s.cfg.From, recipients, []byte(msg)))
}

func buildComplaintCreatedBody(c *models.Complaint) string {
	var buf bytes.Buffer
	buf.WriteString("<h2>New Complaint Submitted</h2>\n")
	writeField(&buf, "Title", c.Title)
	writeField(&buf, "Category", string(c.Category))
	writeField(&buf, "Priority", string(c.Priority))
	buf.WriteString("<p><strong>Description:</strong></p>\n")
	buf.WriteString("<p>" + html.EscapeString(c.Description) + "</p>\n")
	return buf.String()
}

func buildComplaintStatusBody(c *models.Complaint, updatedAt time.Time) string {
	var buf bytes.Buffer
	buf.WriteString("<h2>Complaint Status Updated</h2>\n")
	writeField(&buf, "Title", c.Title)
	writeField(&buf, "New Status", string(c.Status))
	writeField(&buf, "Updated On", updatedAt.Format(time.RFC1123))
	return buf.String()
}

func writeField(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "<p><strong>%s:</strong> %s</p>\n", label, html.EscapeString(value))
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from string, to []string, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

// deliverSMTP 按配置选择 SSL / STARTTLS / 明文连接投递
func deliverSMTP(cfg *config.EmailConfig, from string, to []string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	var client *smtp.Client
	if cfg.UseSSL {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: cfg.Host})
		if err != nil {
			return err
		}
		client, err = smtp.NewClient(conn, cfg.Host)
		if err != nil {
			_ = conn.Close()
			return err
		}
	} else {
		var err error
		client, err = smtp.Dial(addr)
		if err != nil {
			return err
		}
		if cfg.UseTLS {
			if err := client.StartTLS(&tls.Config{ServerName: cfg.Host}); err != nil {
				_ = client.Close()
				return err
			}
		}
	}
	defer client.Close()

	if cfg.Username != "" || cfg.Password != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)); err != nil {
				return err
			}
		}
	}
	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return fmt.Errorf("%w: %v", ErrEmailRecipientRejected, err)
	}
	return err
}

var recipientRejectedKeywords = []string{
	"no such recipient",
	"no such user",
	"recipient not found",
	"recipient address rejected",
	"invalid recipient",
	"user unknown",
	"unknown user",
	"unknown mailbox",
	"mailbox unavailable",
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	for _, keyword := range recipientRejectedKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		for _, hint := range []string{"recipient", "user", "mailbox", "address", "rcpt"} {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
