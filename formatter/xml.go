package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/validation"
)

// BuildXML serializes a report to XML
func (rb *responseBuilder) BuildXML(rep *validation.Report) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString("<ValidationReport>")
	writeElem(&b, "FeedName", rep.FeedName)
	writeElem(&b, "GeneratedAt", rep.GeneratedAt.Format(time.RFC3339))

	s := rep.Summary
	b.WriteString("<Summary>")
	writeInt(&b, "Trips", s.Trips)
	writeInt(&b, "StopTimes", s.StopTimes)
	if s.ServiceStart != nil {
		writeElem(&b, "ServiceStart", s.ServiceStart.String())
	}
	if s.ServiceEnd != nil {
		writeElem(&b, "ServiceEnd", s.ServiceEnd.String())
	}
	writeInt(&b, "Errors", s.Errors)
	writeInt(&b, "Warnings", s.Warnings)
	writeInt(&b, "Infos", s.Infos)
	b.WriteString("</Summary>")

	b.WriteString("<Notices>")
	for _, n := range rep.Notices {
		b.WriteString(`<Notice code="`)
		b.WriteString(xmlEscape(n.Code))
		b.WriteString(`" severity="`)
		b.WriteString(xmlEscape(string(n.Severity)))
		b.WriteString(`">`)
		writeElem(&b, "File", n.File)
		if n.Row > 0 {
			writeInt(&b, "Row", n.Row)
		}
		writeElem(&b, "Field", n.Field)
		writeElem(&b, "Value", n.Value)
		writeElem(&b, "TripId", n.TripID)
		writeElem(&b, "Message", n.Message)
		b.WriteString("</Notice>")
	}
	b.WriteString("</Notices>")
	b.WriteString("</ValidationReport>")
	return []byte(b.String())
}

// writeElem skips empty values.
func writeElem(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString("<" + name + ">")
	b.WriteString(xmlEscape(value))
	b.WriteString("</" + name + ">")
}

func writeInt(b *strings.Builder, name string, v int) {
	b.WriteString("<" + name + ">")
	b.WriteString(strconv.Itoa(v))
	b.WriteString("</" + name + ">")
}

func xmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
