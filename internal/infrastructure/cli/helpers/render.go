package helpers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/ports"
)

var (
	labelStyle  = lipgloss.NewStyle().Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// badgeColors follows the strength ladder: green for the strongest, red for none.
var badgeColors = map[domain.SecurityLevel]lipgloss.Color{
	domain.SecurityVeryStrong: lipgloss.Color("#22c55e"),
	domain.SecurityStrong:     lipgloss.Color("#3b82f6"),
	domain.SecurityMedium:     lipgloss.Color("#eab308"),
	domain.SecurityWeak:       lipgloss.Color("#f97316"),
}

// BadgeStyle returns the badge style for a security level.
func BadgeStyle(level domain.SecurityLevel) lipgloss.Style {
	c, ok := badgeColors[level]
	if !ok {
		c = lipgloss.Color("#ef4444")
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0a0a0a")).Background(c).Padding(0, 1)
}

// SecurityBadge renders the localised level name inside its colour badge.
func SecurityBadge(tr ports.Translator, level domain.SecurityLevel) string {
	return BadgeStyle(level).Render(translate(tr, "security."+string(level), string(level)))
}

// RenderAlgorithmList prints one line per algorithm.
func RenderAlgorithmList(out io.Writer, tr ports.Translator, infos []domain.AlgorithmInfo) {
	for _, info := range infos {
		fmt.Fprintf(out, "%-9s %-10s %s  %s\n",
			info.Algorithm,
			info.DisplayName,
			SecurityBadge(tr, info.SecurityLevel),
			mutedStyle.Render(info.Description))
	}
}

// RenderAlgorithmInfo prints the detail card for one algorithm.
func RenderAlgorithmInfo(out io.Writer, tr ports.Translator, info domain.AlgorithmInfo) {
	field(out, translate(tr, "label.algorithm", "Algorithm"), info.DisplayName)
	field(out, translate(tr, "label.description", "Description"), info.Description)
	field(out, translate(tr, "label.security", "Security"), SecurityBadge(tr, info.SecurityLevel))
	field(out, translate(tr, "label.key_kind", "Key type"), translate(tr, "keykind."+string(info.KeyKind), string(info.KeyKind)))
}

// RenderResult prints the outcome of a transformation.
func RenderResult(out io.Writer, tr ports.Translator, res domain.ProcessResult) {
	headline := translate(tr, "result.encrypted", "Text encrypted successfully")
	if res.Record.Direction == domain.DirectionDecrypt {
		headline = translate(tr, "result.decrypted", "Text decrypted successfully")
	}
	fmt.Fprintln(out, labelStyle.Render(headline))
	field(out, translate(tr, "label.algorithm", "Algorithm"), res.Record.Algorithm)
	if res.Record.HasKey() {
		field(out, translate(tr, "label.key", "Key"), res.Record.Key)
	}
	field(out, translate(tr, "label.result", "Result"), resultStyle.Render(res.Result))
}

// RenderHistory prints records newest first with relative timestamps.
func RenderHistory(out io.Writer, tr ports.Translator, records []domain.OperationRecord, now time.Time) {
	if len(records) == 0 {
		fmt.Fprintln(out, translate(tr, "history.empty", "No operations in history"))
		return
	}
	for i, rec := range records {
		key := rec.Key
		if !rec.HasKey() {
			key = translate(tr, "history.no_key", "none")
		}
		fmt.Fprintf(out, "%2d. %s %s %s=%s %s\n",
			i+1,
			strings.ToUpper(string(rec.Direction)),
			rec.Algorithm,
			strings.ToLower(translate(tr, "label.key", "Key")),
			key,
			mutedStyle.Render("("+humanize.RelTime(rec.Timestamp, now, "ago", "from now")+")"))
		fmt.Fprintf(out, "    %s\n", rec.Result)
	}
}

func field(out io.Writer, label, value string) {
	fmt.Fprintf(out, "%s: %s\n", labelStyle.Render(label), value)
}

func translate(tr ports.Translator, id, fallback string) string {
	if tr == nil {
		return fallback
	}
	if msg := tr.T(id); msg != id {
		return msg
	}
	return fallback
}
