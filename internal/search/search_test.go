package search

import (
	"testing"

	"skill-passport/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	alice, bob, carol uuid.UUID
	skills            []skill.Skill
}

func newFixture() fixture {
	f := fixture{alice: uuid.New(), bob: uuid.New(), carol: uuid.New()}
	mk := func(student uuid.UUID, name, program, skillName, category string) skill.Skill {
		return skill.Skill{
			ID:             uuid.New(),
			StudentID:      student,
			StudentName:    name,
			StudentEmail:   name + "@x.edu",
			StudentProgram: program,
			SkillName:      skillName,
			Category:       category,
			Status:         skill.StatusApproved,
		}
	}
	f.skills = []skill.Skill{
		mk(f.bob, "Bob", "Data Science", "Python Programming", "Technical"),
		mk(f.alice, "Alice", "Computer Science", "SQL & Database Design", "Technical"),
		mk(f.bob, "Bob", "Data Science", "Public Speaking", "Soft Skills"),
		mk(f.carol, "Carol", "Business", "SQL & Database Design", "Technical"),
		mk(f.alice, "Alice", "Computer Science", "Leadership", "Soft Skills"),
	}
	return f
}

func TestRun_EmptyQueryGroupsEverythingFirstSeen(t *testing.T) {
	f := newFixture()

	got := Run(f.skills, "")

	require.Len(t, got, 3)
	assert.Equal(t, f.bob, got[0].ID)
	assert.Equal(t, f.alice, got[1].ID)
	assert.Equal(t, f.carol, got[2].ID)

	total := 0
	for _, g := range got {
		total += len(g.Skills)
	}
	assert.Equal(t, len(f.skills), total)

	assert.Equal(t, "Python Programming", got[0].Skills[0].SkillName)
	assert.Equal(t, "Public Speaking", got[0].Skills[1].SkillName)
	assert.Equal(t, "Bob@x.edu", got[0].Email)
	assert.Equal(t, "Data Science", got[0].Program)
}

func TestRun_WhitespaceOnlyQueryMatchesEverything(t *testing.T) {
	f := newFixture()

	assert.Equal(t, "", NormalizeQuery(" \t "))
	assert.Equal(t, Run(f.skills, ""), Run(f.skills, "   "))
	assert.Len(t, Filter(f.skills, "   "), len(f.skills))
}

func TestFilter_CaseInsensitiveAcrossFields(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{"skill name upper", "PYTHON", []string{"Python Programming"}},
		{"category", "soft", []string{"Public Speaking", "Leadership"}},
		{"student name", "alice", []string{"SQL & Database Design", "Leadership"}},
		{"program", "business", []string{"SQL & Database Design"}},
		{"punctuation kept", "sql & data", []string{"SQL & Database Design", "SQL & Database Design"}},
		{"surrounding spaces", "  python  ", []string{"Python Programming"}},
		{"no match", "haskell", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(f.skills, tc.query)
			names := make([]string, 0, len(got))
			for _, s := range got {
				names = append(names, s.SkillName)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestRun_SQLQueryReturnsBothHolders(t *testing.T) {
	f := newFixture()

	got := Run(f.skills, "SQL")

	require.Len(t, got, 2)
	assert.Equal(t, f.alice, got[0].ID)
	assert.Equal(t, f.carol, got[1].ID)
	for _, g := range got {
		require.Len(t, g.Skills, 1)
		assert.Equal(t, "SQL & Database Design", g.Skills[0].SkillName)
	}
}

func TestGroupByStudent_Empty(t *testing.T) {
	got := GroupByStudent(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
