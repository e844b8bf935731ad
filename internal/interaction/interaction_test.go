package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_AspirinWarfarinIsHigh(t *testing.T) {
	t.Parallel()

	rep := Check([]string{"Aspirin 75mg", "Warfarin 5mg"})
	require.False(t, rep.Safe)
	require.Len(t, rep.Alerts, 1)
	assert.Equal(t, SeverityHigh, rep.Alerts[0].Severity)
	assert.Equal(t, [2]string{"aspirin", "warfarin"}, rep.Alerts[0].Meds)
}

func TestCheck_SingleMedicationIsSafe(t *testing.T) {
	t.Parallel()

	rep := Check([]string{"Paracetamol 650mg"})
	assert.True(t, rep.Safe)
	assert.NotNil(t, rep.Alerts)
	assert.Empty(t, rep.Alerts)
}

func TestCheck_EmptyInputIsSafe(t *testing.T) {
	t.Parallel()

	rep := Check(nil)
	assert.True(t, rep.Safe)
	assert.Empty(t, rep.Alerts)
}

func TestCheck_CaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	rep := Check([]string{"  SILDENAFIL citrate ", "nitroglycerin spray"})
	require.Len(t, rep.Alerts, 1)
	assert.Equal(t, SeverityHigh, rep.Alerts[0].Severity)
}

func TestCheck_MultipleAlerts(t *testing.T) {
	t.Parallel()

	rep := Check([]string{"Aspirin", "Warfarin", "Ibuprofen 400"})
	require.Len(t, rep.Alerts, 2)
	severities := []string{rep.Alerts[0].Severity, rep.Alerts[1].Severity}
	assert.ElementsMatch(t, []string{SeverityHigh, SeverityMedium}, severities)
}

func TestCheck_BothDrugsInOneName(t *testing.T) {
	t.Parallel()

	// literal substring behaviour: one combined entry satisfies both members of the pair
	rep := Check([]string{"aspirin+warfarin kit"})
	require.Len(t, rep.Alerts, 1)
}

func TestCheckRules_CustomTable(t *testing.T) {
	t.Parallel()

	table := []Rule{{Pair: [2]string{"Foo", "Bar"}, Severity: SeverityMedium, Warning: "w"}}
	assert.False(t, CheckRules(table, []string{"foobar"}).Safe)
	assert.True(t, CheckRules(table, []string{"foo"}).Safe)
}

func TestRules_ReturnsCopy(t *testing.T) {
	t.Parallel()

	r := Rules()
	require.Len(t, r, 7)
	r[0].Severity = "changed"
	assert.Equal(t, SeverityHigh, Rules()[0].Severity)
}
