package report

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/vk/assetcheck/internal/check"
)

// execErrorMsg is the item template used for the synthetic finding emitted
// when a check's predicate fails instead of returning findings.
const execErrorMsg = "Check execution failed: {found}"

// Render substitutes {name} placeholders in template with the corresponding
// values. A placeholder with no corresponding value renders as empty; Render
// never fails. An unterminated placeholder is emitted verbatim rather than
// dropped, so a bad template degrades instead of losing the finding.
func Render(template string, values map[string]any) string {
	var b strings.Builder
	for {
		open := strings.IndexByte(template, '{')
		if open < 0 {
			b.WriteString(template)
			break
		}
		b.WriteString(template[:open])
		rest := template[open:]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		name := rest[1:end]
		if v, ok := values[name]; ok {
			b.WriteString(renderValue(v))
		}
		template = rest[end+1:]
	}
	return b.String()
}

// renderValue turns a finding field into its display representation.
func renderValue(v any) string {
	if v == nil {
		return ""
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// findingValues builds the substitution map for one finding: the fixed
// {item}, {expected}, {found} placeholders plus any extra named fields.
func findingValues(f check.Finding) map[string]any {
	values := make(map[string]any, 3+len(f.Fields))
	for k, v := range f.Fields {
		values[k] = v
	}
	values["item"] = f.Item
	values["expected"] = f.Expected
	values["found"] = f.Found
	return values
}

// Build aggregates raw results, in execution order, into the canonical report
// sequence: one Report per executed check, items rendered through their
// check's template. An empty item template degrades to the item identifier.
func Build(raw []RawResult) []Report {
	reports := make([]Report, 0, len(raw))
	for _, r := range raw {
		rep := Report{
			Message:    r.Msg,
			Identifier: r.ID,
			MsgType:    string(r.Severity),
			Items:      make([]Item, 0, len(r.Findings)),
		}

		if r.Err != nil {
			f := check.Finding{Item: r.ID, Found: r.Err.Error()}
			rep.Items = append(rep.Items, Item{
				Message:  Render(execErrorMsg, findingValues(f)),
				Item:     f.Item,
				Expected: f.Expected,
				Found:    f.Found,
			})
		}

		for _, f := range r.Findings {
			template := r.ItemMsg
			if template == "" {
				template = "{item}"
			}
			rep.Items = append(rep.Items, Item{
				Message:  Render(template, findingValues(f)),
				Item:     f.Item,
				Expected: f.Expected,
				Found:    f.Found,
			})
		}

		reports = append(reports, rep)
	}
	return reports
}

// FailMessage renders a human-readable failure summary for one report:
// the summary message with each item's message appended, indented.
func FailMessage(rep Report, indent string) string {
	if len(rep.Items) == 0 {
		return rep.Message
	}
	lines := make([]string, 0, len(rep.Items))
	for _, item := range rep.Items {
		lines = append(lines, item.Message)
	}
	return rep.Message + ":\n" + indent + strings.Join(lines, "\n"+indent)
}
