package cli

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrijs2005/socconsole/internal/console/models"
)

var titleCaser = cases.Title(language.English)

// label turns API enum values like "true_positive" into "True Positive".
func label(s string) string {
	if s == "" {
		return "-"
	}
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

// formatSeconds renders an MTTD/MTTR average, e.g. 2409 -> "40m9s".
func formatSeconds(s float64) string {
	if s <= 0 {
		return "0s"
	}
	return time.Duration(s * float64(time.Second)).Round(time.Second).String()
}

func assignee(al models.Alert) string {
	switch {
	case al.Assigned():
		return al.AssignedTo
	case al.AssignedToEmail != "":
		return al.AssignedToEmail
	}
	return "Unassigned"
}

func formatCreated(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04")
}

func pageCount(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func percent(part, whole int) string {
	if whole == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(whole))
}
