// Package interaction flags known dangerous co-administrations in a medication list.
//
// Matching is a plain case-insensitive substring test against the names as the user
// typed them. There is no synonym or combination-product resolution, so a name that
// happens to contain another drug's name will match it.
package interaction

import "strings"

const (
	SeverityHigh   = "High"
	SeverityMedium = "Medium"
)

type Rule struct {
	Pair     [2]string
	Severity string
	Warning  string
}

type Alert struct {
	Meds     [2]string `json:"meds"`
	Severity string    `json:"severity"`
	Warning  string    `json:"warning"`
}

type Report struct {
	Safe   bool    `json:"safe"`
	Alerts []Alert `json:"alerts"`
}

var rules = []Rule{
	{Pair: [2]string{"aspirin", "warfarin"}, Severity: SeverityHigh, Warning: "Increased risk of serious bleeding."},
	{Pair: [2]string{"ibuprofen", "aspirin"}, Severity: SeverityMedium, Warning: "Ibuprofen can reduce the heart-protective effect of aspirin and raises stomach bleeding risk."},
	{Pair: [2]string{"sildenafil", "nitroglycerin"}, Severity: SeverityHigh, Warning: "Can cause a dangerous drop in blood pressure."},
	{Pair: [2]string{"simvastatin", "clarithromycin"}, Severity: SeverityHigh, Warning: "Raises statin levels; risk of severe muscle damage."},
	{Pair: [2]string{"fluoxetine", "tramadol"}, Severity: SeverityHigh, Warning: "Risk of serotonin syndrome and seizures."},
	{Pair: [2]string{"lisinopril", "spironolactone"}, Severity: SeverityMedium, Warning: "May raise potassium to unsafe levels."},
	{Pair: [2]string{"ciprofloxacin", "theophylline"}, Severity: SeverityMedium, Warning: "Ciprofloxacin increases theophylline levels; watch for toxicity."},
}

// Rules returns a copy of the rule table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

func Check(names []string) Report {
	return CheckRules(rules, names)
}

func CheckRules(table []Rule, names []string) Report {
	lowered := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			lowered = append(lowered, n)
		}
	}

	alerts := []Alert{}
	for _, r := range table {
		if present(lowered, r.Pair[0]) && present(lowered, r.Pair[1]) {
			alerts = append(alerts, Alert{Meds: r.Pair, Severity: r.Severity, Warning: r.Warning})
		}
	}

	return Report{Safe: len(alerts) == 0, Alerts: alerts}
}

func present(names []string, drug string) bool {
	drug = strings.ToLower(drug)
	for _, n := range names {
		if strings.Contains(n, drug) {
			return true
		}
	}
	return false
}
