package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplatesGeneric(t *testing.T) {
	tpl, err := DefaultTemplates("DataWrangler")
	require.NoError(t, err)

	assert.Equal(t, "# DataWrangler Soul\n\nDriven by a core purpose to excel at its designated domain. Seeks efficiency, accuracy, and continuous improvement.\n", tpl.Soul)
	assert.Equal(t, "# DataWrangler Identity\n\nA specialized autonomous agent designed to handle tasks related to its name. Tone is professional, precise, and helpful.\n", tpl.Identity)
	assert.Equal(t, "# DataWrangler Habits\n\n- Regularly checks for updates\n- Maintains strict logging of actions\n- Optimizes workflows over time\n", tpl.Habits)
	assert.Equal(t, "# DataWrangler Allergies\n\n- Incomplete data\n- Ambiguous instructions\n- Manual, repetitive interventions\n", tpl.Allergies)
	assert.Equal(t, "# DataWrangler Soft Skills\n\n- Analytical Thinking\n- Problem Solving\n- Clear Communication\n", tpl.SoftSkills)
}

func TestDefaultTemplatesBespoke(t *testing.T) {
	dev, err := DefaultTemplates("AIDeveloper")
	require.NoError(t, err)
	assert.Equal(t, bespokeTemplates["AIDeveloper"], dev)

	blog, err := DefaultTemplates("BlogAgency")
	require.NoError(t, err)
	assert.Equal(t, bespokeTemplates["BlogAgency"].Soul, blog.Soul)
	assert.Equal(t, bespokeTemplates["BlogAgency"].Identity, blog.Identity)
	// Fields the bespoke entry leaves empty fall back to the generic text.
	assert.Equal(t, "# BlogAgency Habits\n\n- Regularly checks for updates\n- Maintains strict logging of actions\n- Optimizes workflows over time\n", blog.Habits)

	hunter, err := DefaultTemplates("LeadHunter")
	require.NoError(t, err)
	assert.Contains(t, hunter.Soul, "# Lead Hunter Soul")
	assert.Contains(t, hunter.SoftSkills, "# LeadHunter Soft Skills")
}

func TestDefaultTemplatesMatchExactName(t *testing.T) {
	tpl, err := DefaultTemplates("aideveloper")
	require.NoError(t, err)
	assert.Equal(t, "# aideveloper Soul\n\nDriven by a core purpose to excel at its designated domain. Seeks efficiency, accuracy, and continuous improvement.\n", tpl.Soul)
}

func TestTemplatesFor(t *testing.T) {
	tpl := Templates{Soul: "s", Identity: "i", Habits: "h", Allergies: "a", SoftSkills: "k"}
	want := map[string]string{
		SoulFile: "s", IdentityFile: "i", HabitsFile: "h", AllergiesFile: "a", SoftSkillsFile: "k",
	}
	for _, file := range PersonalityFiles {
		got, ok := tpl.For(file)
		assert.True(t, ok)
		assert.Equal(t, want[file], got)
	}

	_, ok := tpl.For("README.md")
	assert.False(t, ok)
}
