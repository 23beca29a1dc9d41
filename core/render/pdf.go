package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"nis2-copilot/core/drafts"
	"nis2-copilot/core/utils"
)

// Metadata is the header block shared by every report type. Contact and
// awareness come from the intake; the rest is deployment configuration.
type Metadata struct {
	Company        string
	RegulatorID    string
	SectorCategory string
	Classification string
	Contact        string
	AwarenessUTC   time.Time
	MemberStates   []string
	PreviousRef    string
}

// Missing or empty sections render this placeholder instead of being omitted,
// so every report has the same visual shape regardless of draft completeness.
const placeholder = "—"

func Label(reportType string) string {
	switch reportType {
	case drafts.TypeEarlyWarning:
		return "Early Warning (24h)"
	case drafts.TypeIncidentNotification:
		return "Incident Notification (72h)"
	case drafts.TypeFinalReport:
		return "Final Report (30 days)"
	}
	return reportType
}

type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// Render produces the paginated PDF for one draft. Pure: no storage side
// effects, bytes out.
func Render(reportType string, b drafts.Bundle, meta Metadata) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("NIS2 %s - %s", Label(reportType), meta.Company), true)
	pdf.SetAuthor("Incident Copilot", true)
	pdf.SetCreator("Incident Copilot", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	d := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	d.h1("Incident Report – NIS2")
	d.centered(Label(reportType))
	d.rule()

	d.h2("Metadata")
	d.kv("Company", meta.Company)
	d.kv("Regulator ID", meta.RegulatorID)
	d.kv("Sector/Category", meta.SectorCategory)
	d.kv("Essential/Important", meta.Classification)
	d.kv("24/7 Contact", meta.Contact)
	d.kv("Awareness (ISO-8601)", utils.FormatInstant(meta.AwarenessUTC))
	d.kv("Affected member states", strings.Join(meta.MemberStates, ", "))
	d.kv("Report type", Label(reportType))
	if meta.PreviousRef != "" {
		d.kv("Ref. previous report", meta.PreviousRef)
	}

	switch reportType {
	case drafts.TypeEarlyWarning:
		ew := b.EarlyWarning
		d.section("Summary", ew.Summary)
		d.section("Likely cause", ew.LikelyCause)
		d.section("Cross-border impact", "")
		d.section("Support needed", "")
		d.closing("")
	case drafts.TypeIncidentNotification:
		in := b.IncidentNotification
		d.section("Severity & impact", in.UserImpact)
		d.table("Indicators of Compromise (IoCs)", in.IndicatorsOfCompromise)
		d.section("Immediate actions", strings.Join(in.MitigationSteps, "\n"))
		d.section("Dependencies / supply chain", "")
		d.section("Timeline (first entries)", FlattenTimeline(in.Timeline))
		d.closing("")
	case drafts.TypeFinalReport:
		fr := b.FinalReport
		d.section("Root cause", fr.RootCause)
		d.section("Permanent measures", strings.Join(fr.PreventiveMeasures, "\n"))
		d.table("Indicators of Compromise (IoCs)", nil)
		d.section("Full timeline (UTC)", FlattenTimeline(fr.FullTimeline))
		d.section("Lessons learned", strings.Join(fr.LessonsLearned, "\n"))
		d.section("Final impact", fr.DetailedImpact)
		d.closing(fr.AttachmentsNote)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", reportType, err)
	}
	return buf.Bytes(), nil
}

func (d *document) h1(title string) {
	d.pdf.SetFont("Helvetica", "B", 22)
	d.pdf.CellFormat(0, 10, d.tr(title), "", 1, "C", false, 0, "")
	d.pdf.Ln(2)
}

func (d *document) centered(text string) {
	d.pdf.SetFont("Helvetica", "", 12)
	d.pdf.CellFormat(0, 6, d.tr(text), "", 1, "C", false, 0, "")
	d.pdf.Ln(3)
}

func (d *document) rule() {
	left, _, right, _ := d.pdf.GetMargins()
	w, _ := d.pdf.GetPageSize()
	y := d.pdf.GetY() + 1
	d.pdf.SetLineWidth(0.3)
	d.pdf.Line(left, y, w-right, y)
	d.pdf.Ln(5)
}

func (d *document) h2(title string) {
	d.pdf.Ln(4)
	d.pdf.SetFont("Helvetica", "B", 13)
	d.pdf.CellFormat(0, 7, d.tr(strings.ToUpper(title)), "", 1, "L", false, 0, "")
	d.pdf.Ln(1)
}

func (d *document) p(text string) {
	if strings.TrimSpace(text) == "" {
		text = placeholder
	}
	d.pdf.SetFont("Helvetica", "", 11)
	d.pdf.MultiCell(0, 5.5, d.tr(text), "", "L", false)
}

func (d *document) kv(key, value string) {
	if strings.TrimSpace(value) == "" {
		value = placeholder
	}
	d.pdf.SetFont("Helvetica", "B", 11)
	d.pdf.CellFormat(55, 6, d.tr(key), "", 0, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 11)
	d.pdf.MultiCell(0, 6, d.tr(value), "", "L", false)
}

func (d *document) section(title, text string) {
	d.h2(title)
	d.p(text)
}

// table renders structured indicator data: strings as plain text, arrays as
// bullets, maps as key/value rows. Empty data still renders a placeholder.
func (d *document) table(title string, data any) {
	d.h2(title)
	switch rows := data.(type) {
	case nil:
		d.p("")
	case string:
		d.p(rows)
	case []string:
		if len(rows) == 0 {
			d.p("")
			return
		}
		for _, row := range rows {
			d.p("• " + row)
		}
	case []any:
		if len(rows) == 0 {
			d.p("")
			return
		}
		for _, row := range rows {
			switch entry := row.(type) {
			case string:
				d.p("• " + entry)
			case map[string]any:
				for _, k := range sortedKeys(entry) {
					d.kv("• "+k, stringify(entry[k]))
				}
			default:
				d.p("• " + stringify(entry))
			}
		}
	case map[string]any:
		if len(rows) == 0 {
			d.p("")
			return
		}
		for _, k := range sortedKeys(rows) {
			d.kv("• "+k, stringify(rows[k]))
		}
	default:
		d.p(stringify(data))
	}
}

// closing appends the attachments note every report type ends with.
func (d *document) closing(note string) {
	d.h2("Attachments (optional)")
	if strings.TrimSpace(note) == "" {
		note = "Log excerpts, forensic summaries, hash lists, screenshots."
	}
	d.p(note)
}
