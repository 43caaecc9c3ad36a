// Package search implements the employer-facing discovery over approved
// skills: substring filtering followed by grouping per student.
package search

import (
	"skill-passport/internal/domain/skill"

	"github.com/google/uuid"
)

// StudentSummary is one student's group of matching skills.
type StudentSummary struct {
	ID      uuid.UUID
	Name    string
	Email   string
	Program string
	Skills  []skill.Skill
}

// Filter keeps skills whose student name, student program, skill name or
// category contains the query, ignoring case. An empty query keeps
// everything. Input order is preserved.
func Filter(skills []skill.Skill, query string) []skill.Skill {
	q := NormalizeQuery(query)
	out := make([]skill.Skill, 0, len(skills))
	for _, s := range skills {
		if q == "" ||
			matches(s.StudentName, q) ||
			matches(s.StudentProgram, q) ||
			matches(s.SkillName, q) ||
			matches(s.Category, q) {
			out = append(out, s)
		}
	}
	return out
}

// GroupByStudent groups skills by StudentID. Groups appear in the order their
// student was first seen; each group keeps its skills in input order. The
// summary fields come from the first skill of the group.
func GroupByStudent(skills []skill.Skill) []StudentSummary {
	out := make([]StudentSummary, 0)
	index := make(map[uuid.UUID]int)

	for _, s := range skills {
		i, ok := index[s.StudentID]
		if !ok {
			out = append(out, StudentSummary{
				ID:      s.StudentID,
				Name:    s.StudentName,
				Email:   s.StudentEmail,
				Program: s.StudentProgram,
				Skills:  make([]skill.Skill, 0, 1),
			})
			i = len(out) - 1
			index[s.StudentID] = i
		}
		out[i].Skills = append(out[i].Skills, s)
	}
	return out
}

func Run(approved []skill.Skill, query string) []StudentSummary {
	return GroupByStudent(Filter(approved, query))
}
