package ruru

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"ruru-backoffice/internal/domain"
)

// FormField is one multipart text field.
type FormField struct {
	Name  string
	Value string
}

// LocalQuoteFields lists the multipart text fields of a local quote in wire order.
func LocalQuoteFields(q domain.LocalQuote) []FormField {
	return []FormField{
		{"firstname", q.FullName},
		{"email", q.Email},
		{"phoneNumber", q.Phone},
		{"originCountry", q.OriginCountry},
		{"originCity", q.OriginCity},
		{"originState", q.OriginState},
		{"destinationCountry", q.DestinationCountry},
		{"destinationCity", q.DestinationCity},
		{"destinationState", q.DestinationState},
		{"currency", strings.ToUpper(q.Currency)},
		{"weight", q.Weight},
		{"itemDescription", q.ItemDescription},
		{"nature", strings.ToUpper(q.Nature)},
	}
}

// InternationalQuoteFields lists the multipart text fields of an international quote in wire order.
func InternationalQuoteFields(q domain.InternationalQuote) []FormField {
	return []FormField{
		{"fullname", q.FullName},
		{"email", q.Email},
		{"phoneNumber", q.Phone},
		{"origin", q.Origin},
		{"destination", q.Destination},
		{"quantity", q.Quantity},
		{"weight", q.Weight},
		{"value", q.Value},
		{"itemDescription", q.ItemDescription},
		{"nature", strings.ToUpper(q.Nature)},
	}
}

// EncodeLocalQuote builds the multipart body of a local quote request.
func EncodeLocalQuote(q domain.LocalQuote) (io.Reader, string, error) {
	return encodeMultipart(LocalQuoteFields(q), q.Image)
}

// EncodeInternationalQuote builds the multipart body of an international quote request.
func EncodeInternationalQuote(q domain.InternationalQuote) (io.Reader, string, error) {
	return encodeMultipart(InternationalQuoteFields(q), q.Image)
}

func encodeMultipart(fields []FormField, file *domain.Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("multipart field %s: %w", f.Name, err)
		}
	}
	if file != nil && file.Content != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Filename))
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("multipart file: %w", err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("multipart file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("multipart close: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
