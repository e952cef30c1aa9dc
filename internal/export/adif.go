package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jask/qslcard/internal/qso"
	"github.com/jask/qslcard/internal/settings"
)

// ADIF renders rec as a single-record ADIF (.adi) document.
func ADIF(rec qso.Record, op settings.OperatorSettings) string {
	var b strings.Builder
	b.WriteString("qslcard export\n")
	writeADIFField(&b, "ADIF_VER", "3.1.4")
	writeADIFField(&b, "PROGRAMID", "qslcard")
	b.WriteString("<EOH>\n")

	mode, submode := adifMode(rec.Mode)
	writeADIFField(&b, "CALL", strings.TrimSpace(rec.Callsign))
	writeADIFField(&b, "QSO_DATE", adifDate(rec))
	writeADIFField(&b, "TIME_ON", adifTime(rec.UTC))
	writeADIFField(&b, "FREQ", strings.TrimSpace(rec.MHz))
	writeADIFField(&b, "MODE", mode)
	writeADIFField(&b, "SUBMODE", submode)
	writeADIFField(&b, "RST_SENT", strings.TrimSpace(rec.RST))
	writeADIFField(&b, "QSLMSG", strings.TrimSpace(rec.QSL))
	writeADIFField(&b, "QSL_SENT", "Y")
	writeADIFField(&b, "STATION_CALLSIGN", strings.TrimSpace(op.Callsign))
	writeADIFField(&b, "MY_CQ_ZONE", strings.TrimSpace(op.CQZone))
	writeADIFField(&b, "MY_ITU_ZONE", strings.TrimSpace(op.ITUZone))
	b.WriteString("<EOR>\n")
	return b.String()
}

func writeADIFField(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "<%s:%d>%s\n", name, len(value), value)
}

func adifMode(mode string) (string, string) {
	switch strings.ToUpper(strings.TrimSpace(mode)) {
	case "DSTAR":
		return "DIGITALVOICE", "DSTAR"
	case "DMR":
		return "DIGITALVOICE", "DMR"
	case "DIGITAL VOICE":
		return "DIGITALVOICE", ""
	}
	return strings.ToUpper(strings.TrimSpace(mode)), ""
}

// adifDate returns YYYYMMDD, or "" when the date is incomplete.
func adifDate(rec qso.Record) string {
	month := 0
	for i, m := range qso.Months {
		if strings.EqualFold(m, strings.TrimSpace(rec.Month)) {
			month = i + 1
		}
	}
	year := strings.TrimSpace(rec.Year)
	day := strings.TrimSpace(rec.Day)
	if month == 0 || len(year) != 4 || day == "" {
		return ""
	}
	var d int
	if _, err := fmt.Sscanf(day, "%d", &d); err != nil || d < 1 || d > 31 {
		return ""
	}
	return fmt.Sprintf("%s%02d%02d", year, month, d)
}

var clockTime = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

// adifTime returns HHMM from values like "9:30 (Z)".
func adifTime(utc string) string {
	m := clockTime.FindStringSubmatch(utc)
	if m == nil {
		return ""
	}
	if len(m[1]) == 1 {
		m[1] = "0" + m[1]
	}
	return m[1] + m[2]
}
