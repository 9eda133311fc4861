package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/testutil"
)

func TestConvert_MinimalFile(t *testing.T) {
	snap, err := Convert(validMinimalFile())
	require.NoError(t, err)

	require.Len(t, snap.Clients, 1)
	assert.Equal(t, "c1", snap.Clients[0].ID)
	assert.Equal(t, domain.ClientActive, snap.Clients[0].Status)
	assert.Nil(t, snap.Clients[0].Satisfaction)

	require.Len(t, snap.Projects, 1)
	assert.Equal(t, domain.PriorityMedium, snap.Projects[0].Priority, "priority defaults to medium")
	assert.True(t, snap.Projects[0].Deadline.IsZero())

	require.Len(t, snap.Tickets, 1)
	assert.Equal(t, domain.TicketOpen, snap.Tickets[0].Status, "status defaults to open")
	assert.Equal(t, domain.PriorityMedium, snap.Tickets[0].Priority)
	assert.True(t, testutil.Date("2026-02-18").Equal(snap.Tickets[0].Created))
}

func TestLoadFile_JSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := LoadFile("testdata/portfolio.json")
	require.NoError(t, err)
	fromYAML, err := LoadFile("testdata/portfolio.yaml")
	require.NoError(t, err)

	for _, snap := range []domain.Snapshot{fromJSON, fromYAML} {
		assert.Equal(t, 20500.0, snap.KPIs.MRR)
		assert.Equal(t, map[string]float64{"Automation": 12000, "BI & Dashboards": 8500}, snap.KPIs.RevenueByService)
		assert.Equal(t, []string{"Jan", "Feb"}, snap.KPIs.Months)

		require.Len(t, snap.Clients, 2)
		assert.Equal(t, domain.ClientActive, snap.Clients[0].Status)
		assert.Equal(t, domain.ClientChurnRisk, snap.Clients[1].Status)
		require.NotNil(t, snap.Clients[0].Since)
		require.Len(t, snap.Clients[0].History, 1)
		assert.Equal(t, "c1", snap.Clients[0].History[0].ClientID)

		require.Len(t, snap.Projects, 1)
		p := snap.Projects[0]
		assert.Equal(t, domain.ProjectInProgress, p.Status)
		assert.Equal(t, domain.PriorityHigh, p.Priority)
		assert.True(t, testutil.Date("2026-03-10").Equal(p.Deadline))
		require.Len(t, p.Tasks, 2)
		assert.Equal(t, "t1", p.Tasks[0].ID)
		assert.NotEmpty(t, p.Tasks[1].ID, "missing task IDs are generated")

		require.Len(t, snap.Tickets, 1)
		assert.True(t, snap.Tickets[0].IsUrgent())

		require.Len(t, snap.Contracts, 1)
		c := snap.Contracts[0]
		assert.True(t, c.AutoRenew)
		assert.True(t, c.LGPDClause)
		require.NotNil(t, c.End)
		assert.True(t, testutil.Date("2026-10-31").Equal(*c.End))

		assert.Equal(t, []domain.Operator{{ID: "op1", Name: "Ana Silva", Initials: "AS", Title: "Senior Analyst"}}, snap.Operators)
	}
}

func TestLoadFile_InvalidFileReportsEveryProblem(t *testing.T) {
	f := &File{Clients: []ClientRecord{{ID: "c1"}}}
	_, err := Decode(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid snapshot")
	assert.Contains(t, err.Error(), "clients[0].name is required")
	assert.Contains(t, err.Error(), "clients[0].status")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestParse_RejectsMalformed(t *testing.T) {
	_, err := Parse([]byte(`{"clients": [`), FormatJSON)
	assert.ErrorContains(t, err, "parsing snapshot json")

	_, err = Parse([]byte("clients: [\n"), FormatYAML)
	assert.ErrorContains(t, err, "parsing snapshot yaml")

	_, err = Parse([]byte(`{}`), "toml")
	assert.ErrorContains(t, err, "unsupported snapshot format")
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForPath("export.JSON"))
	assert.Equal(t, FormatYAML, FormatForPath("export.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("export.yml"))
}
