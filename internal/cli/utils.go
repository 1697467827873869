// Package cli renders search results and dataset status for the Sijil command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/sijil/internal/models"
	"github.com/hyperjump/sijil/internal/search"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is the human-readable result card layout (default).
	OutputText SearchOutputFormat = "text"
	// OutputCompact is one tab-separated line per result: id, civil id, full name.
	OutputCompact SearchOutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// Messages shown in text output.
const (
	MsgNoQuery         = "الرجاء إدخال نص للبحث"
	MsgNoResults       = "لا توجد نتائج مطابقة"
	MsgDataUnavailable = "خطأ في تحميل البيانات"
)

// Card labels.
const (
	labelCivilID     = "رقم الهوية"
	labelFirst       = "الاسم الأول"
	labelFather      = "اسم الأب"
	labelGrandfather = "اسم الجد"
	labelFamily      = "اسم العائلة"
)

const separator = "─────────────────────────────────────────────────────────"

// terminalHighlighter marks matched words in text output. HTML markers from the
// engine are not shown on a terminal.
var terminalHighlighter = search.NewHighlighter("[", "]")

// ParseOutputFormat maps a flag value to a format. Empty means text.
func ParseOutputFormat(s string) (SearchOutputFormat, error) {
	switch f := SearchOutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return OutputText, nil
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, compact or json)", s)
	}
}

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		writeSearchResultsCompact(w, response)
		return nil
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	if !response.DataAvailable {
		fmt.Fprintf(w, "%s\n", MsgDataUnavailable)
	}
	if response.NoQuery {
		fmt.Fprintf(w, "%s\n", MsgNoQuery)
		return
	}
	fmt.Fprintf(w, "\nFound %d of %d records in %.2fms\n\n",
		response.ResultCount, response.TotalRecords, response.ElapsedMs)
	if len(response.Results) == 0 {
		fmt.Fprintf(w, "%s\n", MsgNoResults)
		return
	}
	for i := range response.Results {
		name := response.Results[i].FullName
		if i < len(response.HighlightedNames) {
			name = terminalHighlighter.Highlight(name, response.Query)
		}
		writeOneResult(w, &response.Results[i], name)
	}
}

func writeOneResult(w io.Writer, p *models.Person, displayName string) {
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "ID: %s | %s: %s\n", p.ID, labelCivilID, p.CIIDNum)
	fmt.Fprintf(w, "%s\n", displayName)
	fmt.Fprintf(w, "  %s: %s\n", labelFirst, p.FirstName)
	fmt.Fprintf(w, "  %s: %s\n", labelFather, p.FatherName)
	fmt.Fprintf(w, "  %s: %s\n", labelGrandfather, p.GrandfatherName)
	fmt.Fprintf(w, "  %s: %s\n", labelFamily, p.FamilyName)
	fmt.Fprintln(w)
}

func writeSearchResultsCompact(w io.Writer, response *models.SearchResponse) {
	for i := range response.Results {
		p := &response.Results[i]
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.CIIDNum, p.FullName)
	}
}

// WriteStatus writes dataset statistics to w as text, or as JSON when format is OutputJSON.
func WriteStatus(w io.Writer, st *models.DatasetStats, format SearchOutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	fmt.Fprintf(w, "Records:        %d\n", st.TotalRecords)
	fmt.Fprintf(w, "Data available: %t\n", st.DataAvailable)
	if st.Source != "" {
		fmt.Fprintf(w, "Source:         %s\n", st.Source)
	}
	if st.DatasetVersion != "" {
		fmt.Fprintf(w, "Version:        %s\n", st.DatasetVersion)
	}
	if !st.LoadedAt.IsZero() {
		fmt.Fprintf(w, "Loaded at:      %s\n", st.LoadedAt.Format("2006-01-02 15:04:05"))
	}
	if st.LoadError != "" {
		fmt.Fprintf(w, "Load error:     %s\n", st.LoadError)
	}
	return nil
}
