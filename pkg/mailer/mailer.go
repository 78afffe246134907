package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltmpl "html/template"
	"net/mail"
	"path"
	"strings"
	"sync"
	texttmpl "text/template"
)

//go:embed templates
var templateFS embed.FS

var (
	textTemplates map[string]*texttmpl.Template
	htmlTemplates map[string]*htmltmpl.Template
	parseErr      error
	parseOnce     sync.Once
)

// Message is an outbound e-mail. Either BodyText or a TemplateName must be set.
type Message struct {
	To       []mail.Address
	Subject  string
	BodyText string

	TemplateName string
	TemplateData interface{}

	TextContent string
	HTMLContent string
}

// Mailer delivers messages. Send blocks until the provider accepted or refused the message.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// HasRecipients reports whether the message has at least one recipient.
func (m *Message) HasRecipients() bool { return len(m.To) > 0 }

// HasContent reports whether rendering produced a body.
func (m *Message) HasContent() bool { return m.TextContent != "" || m.HTMLContent != "" }

// Render fills TextContent and HTMLContent from BodyText or the named templates.
func (m *Message) Render() error {
	if m.BodyText != "" {
		m.TextContent = m.BodyText
	}
	if m.TemplateName == "" {
		return nil
	}

	parseOnce.Do(parseTemplates)
	if parseErr != nil {
		return parseErr
	}

	txt, okText := textTemplates[m.TemplateName]
	html, okHTML := htmlTemplates[m.TemplateName]
	if !okText && !okHTML {
		return fmt.Errorf("mail template %q not found", m.TemplateName)
	}

	var buf bytes.Buffer
	if okText && m.TextContent == "" {
		if err := txt.Execute(&buf, m.TemplateData); err != nil {
			return fmt.Errorf("render %s.txt: %w", m.TemplateName, err)
		}
		m.TextContent = buf.String()
		buf.Reset()
	}
	if okHTML {
		if err := html.Execute(&buf, m.TemplateData); err != nil {
			return fmt.Errorf("render %s.gohtml: %w", m.TemplateName, err)
		}
		m.HTMLContent = buf.String()
	}
	return nil
}

func parseTemplates() {
	textTemplates = make(map[string]*texttmpl.Template)
	htmlTemplates = make(map[string]*htmltmpl.Template)

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		parseErr = fmt.Errorf("read mail templates: %w", err)
		return
	}

	for _, entry := range entries {
		fname := entry.Name()
		ext := path.Ext(fname)
		name := strings.TrimSuffix(fname, ext)
		fp := path.Join("templates", fname)

		switch ext {
		case ".txt":
			tmpl, err := texttmpl.New(fname).Option("missingkey=error").ParseFS(templateFS, fp)
			if err != nil {
				parseErr = fmt.Errorf("parse %s: %w", fname, err)
				return
			}
			textTemplates[name] = tmpl
		case ".gohtml":
			tmpl, err := htmltmpl.New(fname).Option("missingkey=error").ParseFS(templateFS, fp)
			if err != nil {
				parseErr = fmt.Errorf("parse %s: %w", fname, err)
				return
			}
			htmlTemplates[name] = tmpl
		}
	}
}

func joinAddresses(addrs []mail.Address) string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String())
	}
	return strings.Join(out, ", ")
}
