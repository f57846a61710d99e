/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: writer.go
Description: Text and JSON renderings of a profile, and the format switch used by the
command line.
*/

package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kleascm/columnscout/pkg/profile"
)

// Format selects a profile rendering
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat validates a format name. An empty name selects text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Write renders p to w in the given format
func Write(w io.Writer, p *profile.Profile, format Format, version string) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, p)
	case FormatHTML:
		dg := NewDashboardGenerator("", nil)
		return dg.Render(w, NewDashboardData(p, "Column Profile", version))
	default:
		return WriteText(w, p)
	}
}

// WriteJSON writes the profile as indented JSON
func WriteJSON(w io.Writer, p *profile.Profile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return nil
}

// WriteText writes a one line per column table
func WriteText(w io.Writer, p *profile.Profile) error {
	fmt.Fprintf(w, "Source: %s  Rows: %d  Locale: %s  Run: %s\n\n", p.Source, p.Rows, p.Locale, p.RunID)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tTYPE\tSEMANTIC\tCONFIDENCE\tSAMPLES\tNULLS\tBLANKS\tOUTLIERS\tMIN\tMAX\tREGEXP")
	for _, r := range p.Columns {
		typ := r.BaseType.String()
		if r.TypeModifier != "" {
			typ += "/" + r.TypeModifier
		}
		semantic := r.SemanticType
		if semantic == "" {
			semantic = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.3f\t%d\t%d\t%d\t%d\t%s\t%s\t%s\n",
			r.Name, typ, semantic, r.Confidence,
			r.SampleCount, r.NullCount, r.BlankCount, r.OutlierCount,
			orDash(r.Min), orDash(r.Max), orDash(r.RegExp))
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
