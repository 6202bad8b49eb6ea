// Package export encodes labeled record sets into downloadable files.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"fetchora/internal/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)

// ParseFormat normalizes a caller-supplied format selector. Empty input
// defaults to csv.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatJSON, FormatXLSX, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %q", s)
	}
}

// File is an encoded download: raw bytes plus the headers the HTTP layer
// needs to serve it.
type File struct {
	Data     []byte
	MIME     string
	Filename string
}

func Encode(records []domain.Record, format Format) (*File, error) {
	switch format {
	case FormatCSV:
		return encodeCSV(records)
	case FormatJSON:
		return encodeJSON(records)
	case FormatXLSX:
		return encodeXLSX(records)
	case FormatHTML:
		return encodeHTML(records)
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}
}

func encodeCSV(records []domain.Record) (*File, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"comment", "sentiment"}); err != nil {
		return nil, err
	}
	for _, r := range records {
		if err := w.Write([]string{r.Comment, strconv.Itoa(r.Sentiment)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &File{Data: buf.Bytes(), MIME: "text/csv", Filename: "yt_comments.csv"}, nil
}

func encodeJSON(records []domain.Record) (*File, error) {
	if records == nil {
		records = []domain.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Comments are arbitrary UTF-8 text for a file download, not an HTML
	// context; keep angle brackets and ampersands literal.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return &File{Data: buf.Bytes(), MIME: "application/json", Filename: "yt_comments.json"}, nil
}

var htmlTable = template.Must(template.New("table").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>yt_comments</title></head>
<body>
<table border="1">
<thead><tr><th>comment</th><th>sentiment</th></tr></thead>
<tbody>
{{- range .}}
<tr><td>{{.Comment}}</td><td>{{.Sentiment}}</td></tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

func encodeHTML(records []domain.Record) (*File, error) {
	var buf bytes.Buffer
	if err := htmlTable.Execute(&buf, records); err != nil {
		return nil, err
	}
	return &File{Data: buf.Bytes(), MIME: "text/html", Filename: "yt_comments.html"}, nil
}

func encodeXLSX(records []domain.Record) (*File, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow("Sheet1", "A1", &[]any{"comment", "sentiment"}); err != nil {
		return nil, err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow("Sheet1", cell, &[]any{r.Comment, r.Sentiment}); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return &File{
		Data:     buf.Bytes(),
		MIME:     "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Filename: "yt_comments.xlsx",
	}, nil
}
