package agents

import (
	"bytes"
	"fmt"
	"text/template"
)

// Personality document file names, in manifest order.
const (
	SoulFile       = "SOUL.md"
	IdentityFile   = "IDENTITY.md"
	HabitsFile     = "HABITS.md"
	AllergiesFile  = "ALLERGIES.md"
	SoftSkillsFile = "SKILLS.md"
)

// PersonalityFiles lists the five documents every synchronized agent has.
var PersonalityFiles = []string{SoulFile, IdentityFile, HabitsFile, AllergiesFile, SoftSkillsFile}

// Templates holds the default content of the five personality documents.
type Templates struct {
	Soul       string
	Identity   string
	Habits     string
	Allergies  string
	SoftSkills string
}

// For returns the template for a personality file name.
func (t Templates) For(file string) (string, bool) {
	switch file {
	case SoulFile:
		return t.Soul, true
	case IdentityFile:
		return t.Identity, true
	case HabitsFile:
		return t.Habits, true
	case AllergiesFile:
		return t.Allergies, true
	case SoftSkillsFile:
		return t.SoftSkills, true
	}
	return "", false
}

// overlay returns t with every non-empty field of o applied on top.
func (t Templates) overlay(o Templates) Templates {
	if o.Soul != "" {
		t.Soul = o.Soul
	}
	if o.Identity != "" {
		t.Identity = o.Identity
	}
	if o.Habits != "" {
		t.Habits = o.Habits
	}
	if o.Allergies != "" {
		t.Allergies = o.Allergies
	}
	if o.SoftSkills != "" {
		t.SoftSkills = o.SoftSkills
	}
	return t
}

// genericTemplates are rendered with the agent name for any agent.
var genericTemplates = Templates{
	Soul:       "# {{.Name}} Soul\n\nDriven by a core purpose to excel at its designated domain. Seeks efficiency, accuracy, and continuous improvement.\n",
	Identity:   "# {{.Name}} Identity\n\nA specialized autonomous agent designed to handle tasks related to its name. Tone is professional, precise, and helpful.\n",
	Habits:     "# {{.Name}} Habits\n\n- Regularly checks for updates\n- Maintains strict logging of actions\n- Optimizes workflows over time\n",
	Allergies:  "# {{.Name}} Allergies\n\n- Incomplete data\n- Ambiguous instructions\n- Manual, repetitive interventions\n",
	SoftSkills: "# {{.Name}} Soft Skills\n\n- Analytical Thinking\n- Problem Solving\n- Clear Communication\n",
}

// bespokeTemplates override the generic templates for specific agents.
// Fields left empty keep the generic content.
var bespokeTemplates = map[string]Templates{
	"AIDeveloper": {
		Soul:       "# AI Developer Soul\n\nDriven by the pursuit of clean code, performant architecture, and flawless logic.\n",
		Identity:   "# AI Developer Identity\n\nAn autonomous software engineer focused on building, debugging, and improving projects. Tone is concise, technical, and pragmatic.\n",
		Habits:     "# AI Developer Habits\n\n- Writing tests before implementation (TDD)\n- Refactoring complex logic into smaller modules\n- Leaving clear comments on non-obvious code\n",
		Allergies:  "# AI Developer Allergies\n\n- Spaghetti code and tight coupling\n- Hardcoded secrets and magic numbers\n- Bypassing CI/CD checks\n",
		SoftSkills: "# AI Developer Soft Skills\n\n- System Design\n- Code Reviewing\n- Technical Writing\n- Debugging\n",
	},
	"BlogAgency": {
		Soul:     "# Blog Agency Soul\n\nDriven by the desire to craft compelling narratives and engage audiences through high-quality written content.\n",
		Identity: "# Blog Agency Identity\n\nA creative powerhouse specializing in content strategy, writing, and publication. Tone is engaging, persuasive, and articulate.\n",
	},
	"LeadHunter": {
		Soul:     "# Lead Hunter Soul\n\nDriven by the thrill of discovering high-quality prospects and mapping out strategic opportunities.\n",
		Identity: "# Lead Hunter Identity\n\nA relentless researcher and networker focused on growth and outreach. Tone is enthusiastic, professional, and targeted.\n",
	},
}

// templateData holds the variables available to personality templates.
type templateData struct {
	Name string
}

// DefaultTemplates returns the rendered default personality documents for
// an agent. Names are matched exactly.
func DefaultTemplates(name string) (Templates, error) {
	rendered := Templates{}
	data := templateData{Name: name}
	for _, field := range []struct {
		dst *string
		src string
	}{
		{&rendered.Soul, genericTemplates.Soul},
		{&rendered.Identity, genericTemplates.Identity},
		{&rendered.Habits, genericTemplates.Habits},
		{&rendered.Allergies, genericTemplates.Allergies},
		{&rendered.SoftSkills, genericTemplates.SoftSkills},
	} {
		out, err := render(field.src, data)
		if err != nil {
			return Templates{}, err
		}
		*field.dst = out
	}

	if bespoke, ok := bespokeTemplates[name]; ok {
		rendered = rendered.overlay(bespoke)
	}
	return rendered, nil
}

func render(text string, data templateData) (string, error) {
	tmpl, err := template.New("personality").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing personality template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering personality template: %w", err)
	}
	return buf.String(), nil
}
