package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"mime"
	"net"
	"net/http"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/pianao-store/internal/config"
	"github.com/pianao-store/internal/constants"
	"github.com/pianao-store/internal/i18n"
	"github.com/pianao-store/internal/models"
)

// OrderEmailItem 订单邮件中的商品行
type OrderEmailItem struct {
	Title    string       `json:"title"`
	Quantity int          `json:"quantity"`
	Price    models.Money `json:"price"`
}

// OrderEmailRequest 订单确认邮件请求
type OrderEmailRequest struct {
	Email string           `json:"email"`
	Name  string           `json:"name"`
	Items []OrderEmailItem `json:"items"`
	Total models.Money     `json:"total"`
}

// Validate 校验邮件请求
func (r OrderEmailRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || len(r.Items) == 0 {
		return ErrEmailRequestInvalid
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(r.Email)); err != nil {
		return ErrInvalidEmail
	}
	for _, item := range r.Items {
		if strings.TrimSpace(item.Title) == "" || item.Quantity <= 0 {
			return ErrEmailRequestInvalid
		}
	}
	return nil
}

// EmailService 邮件发送服务
type EmailService struct {
	cfg        *config.EmailConfig
	httpClient *http.Client
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	timeout := config.EmailConfig{}.Timeout()
	if cfg != nil {
		timeout = cfg.Timeout()
	}
	return &EmailService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetHTTPClient 替换 HTTP 客户端
func (s *EmailService) SetHTTPClient(client *http.Client) {
	if client == nil {
		return
	}
	s.httpClient = client
}

// SendOrderConfirmation 发送订单确认邮件，返回服务商响应
func (s *EmailService) SendOrderConfirmation(ctx context.Context, req OrderEmailRequest, locale string) (map[string]interface{}, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.cfg == nil {
		return nil, ErrEmailServiceDisabled
	}
	subject := strings.TrimSpace(s.cfg.Subject)
	if subject == "" {
		subject = i18n.T(locale, "email.order.subject")
	}
	body := buildOrderEmailHTML(req, s.cfg.BankTransfer, locale)
	to := strings.TrimSpace(req.Email)

	switch strings.ToLower(strings.TrimSpace(s.cfg.Provider)) {
	case constants.EmailProviderResend:
		return s.sendViaResend(ctx, to, subject, body)
	case constants.EmailProviderSMTP:
		if err := s.sendViaSMTP(ctx, to, subject, body); err != nil {
			return nil, err
		}
		return map[string]interface{}{"provider": constants.EmailProviderSMTP, "to": to}, nil
	default:
		return nil, ErrEmailServiceDisabled
	}
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (s *EmailService) sendViaResend(ctx context.Context, to, subject, body string) (map[string]interface{}, error) {
	if s.cfg.Resend.APIKey == "" || s.cfg.Resend.APIURL == "" || s.cfg.From == "" {
		return nil, ErrEmailServiceNotConfigured
	}
	payload, err := json.Marshal(resendPayload{
		From:    buildFromAddress(s.cfg.From, s.cfg.FromName),
		To:      []string{to},
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Resend.APIURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.Resend.APIKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	result := map[string]interface{}{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &result); err != nil {
			result = map[string]interface{}{"raw": string(raw)}
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, fmt.Errorf("%w: status %d: %s", ErrEmailSendFailed, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return result, nil
}

func (s *EmailService) sendViaSMTP(ctx context.Context, to, subject, body string) error {
	smtpCfg := s.cfg.SMTP
	if smtpCfg.Host == "" || smtpCfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, to, subject, body)

	addr := fmt.Sprintf("%s:%d", smtpCfg.Host, smtpCfg.Port)
	var auth smtp.Auth
	if smtpCfg.Username != "" || smtpCfg.Password != "" {
		auth = smtp.PlainAuth("", smtpCfg.Username, smtpCfg.Password, smtpCfg.Host)
	}

	client, err := dialSMTP(ctx, addr, smtpCfg.Host, smtpCfg.UseSSL, s.cfg.Timeout())
	if err != nil {
		return normalizeEmailSendError(err)
	}
	defer client.Close()

	if !smtpCfg.UseSSL && smtpCfg.UseTLS {
		if err := client.StartTLS(&tls.Config{ServerName: smtpCfg.Host}); err != nil {
			return err
		}
	}
	if err := smtpAuth(client, auth); err != nil {
		return err
	}
	return normalizeEmailSendError(sendSMTPData(client, s.cfg.From, []string{to}, []byte(msg)))
}

func buildOrderEmailHTML(req OrderEmailRequest, bankLines []string, locale string) string {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = req.Email
	}
	var b strings.Builder
	b.WriteString(`<div style="font-family:sans-serif;max-width:600px;margin:0 auto;">`)
	fmt.Fprintf(&b, "<h1>%s</h1>", html.EscapeString(i18n.T(locale, "email.order.heading")))
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(i18n.Sprintf(locale, "email.order.greeting", name)))
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(i18n.T(locale, "email.order.intro")))

	b.WriteString(`<table style="width:100%;border-collapse:collapse;">`)
	fmt.Fprintf(&b, `<tr><th align="left">%s</th><th align="right">%s</th><th align="right">%s</th></tr>`,
		html.EscapeString(i18n.T(locale, "email.order.col_title")),
		html.EscapeString(i18n.T(locale, "email.order.col_quantity")),
		html.EscapeString(i18n.T(locale, "email.order.col_price")),
	)
	for _, item := range req.Items {
		fmt.Fprintf(&b, `<tr><td>%s</td><td align="right">%d</td><td align="right">%s</td></tr>`,
			html.EscapeString(item.Title),
			item.Quantity,
			html.EscapeString(item.Price.Yen()),
		)
	}
	fmt.Fprintf(&b, `<tr><td colspan="2" align="right"><strong>%s</strong></td><td align="right"><strong>%s</strong></td></tr>`,
		html.EscapeString(i18n.T(locale, "email.order.total")),
		html.EscapeString(req.Total.Yen()),
	)
	b.WriteString("</table>")

	if len(bankLines) > 0 {
		fmt.Fprintf(&b, "<h2>%s</h2><p>", html.EscapeString(i18n.T(locale, "email.order.bank_title")))
		for i, line := range bankLines {
			if i > 0 {
				b.WriteString("<br>")
			}
			b.WriteString(html.EscapeString(line))
		}
		b.WriteString("</p>")
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(i18n.T(locale, "email.order.fee_note")))
	}
	fmt.Fprintf(&b, `<p style="color:#888;font-size:12px;">%s</p>`, html.EscapeString(i18n.T(locale, "email.order.footer")))
	b.WriteString("</div>")
	return b.String()
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

// dialSMTP 建立 SMTP 连接，整个会话受 timeout 与 ctx 截止时间约束
func dialSMTP(ctx context.Context, addr, host string, useSSL bool, timeout time.Duration) (*smtp.Client, error) {
	dialer := &net.Dialer{Timeout: timeout}
	var (
		conn net.Conn
		err  error
	)
	if useSSL {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: host}}
		conn, err = tlsDialer.DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, err
	}
	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		_ = conn.Close()
		return nil, err
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return client, nil
}

func smtpAuth(client *smtp.Client, auth smtp.Auth) error {
	if auth == nil {
		return nil
	}
	if ok, _ := client.Extension("AUTH"); ok {
		return client.Auth(auth)
	}
	return nil
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
		return ErrEmailRecipientRejected
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	for _, keyword := range []string{
		"no such recipient",
		"no such user",
		"recipient not found",
		"recipient address rejected",
		"invalid recipient",
		"user unknown",
		"unknown mailbox",
		"mailbox unavailable",
	} {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return strings.Contains(message, "550") && (strings.Contains(message, "recipient") || strings.Contains(message, "mailbox"))
}
