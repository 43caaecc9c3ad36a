package seeder

import (
	"context"
	"errors"

	"skill-passport/internal/domain/skill"
	"skill-passport/internal/domain/user"
	ucauth "skill-passport/internal/usecase/auth"
	ucskill "skill-passport/internal/usecase/skill"
)

const (
	DemoStudentEmail  = "student@demo.edu"
	DemoLecturerEmail = "lecturer@demo.edu"
	DemoEmployerEmail = "employer@demo.com"
	DemoPassword      = "demo-password"
)

func DemoUsers() []ucauth.RegisterInput {
	return []ucauth.RegisterInput{
		{
			Name:     "Sara Student",
			Email:    DemoStudentEmail,
			Password: DemoPassword,
			Role:     string(user.RoleStudent),
			Program:  "Computer Science",
			GitHub:   "https://github.com/sara-demo",
		},
		{
			Name:       "Dr. Ahmed Khan",
			Email:      DemoLecturerEmail,
			Password:   DemoPassword,
			Role:       string(user.RoleLecturer),
			Department: "Software Engineering",
			LinkedIn:   "https://linkedin.com/in/ahmed-khan-demo",
		},
		{
			Name:     "Erin Employer",
			Email:    DemoEmployerEmail,
			Password: DemoPassword,
			Role:     string(user.RoleEmployer),
			Company:  "Acme Corp",
		},
	}
}

type DemoSkill struct {
	Request ucskill.RequestInput
	Outcome skill.Status
}

func DemoSkills() []DemoSkill {
	return []DemoSkill{
		{
			Request: ucskill.RequestInput{
				SkillName:     "Git Version Control",
				Category:      "Technical",
				Description:   "Advanced proficiency in Git workflows, branching strategies, and collaborative development",
				Issuer:        "Dr. Ahmed Khan",
				IssuedBy:      "Software Engineering Lab",
				IssuedByEmail: DemoLecturerEmail,
			},
			Outcome: skill.StatusApproved,
		},
		{
			Request: ucskill.RequestInput{
				SkillName:     "SQL & Database Design",
				Category:      "Technical",
				Description:   "Design and implement relational databases with complex queries and optimization",
				Issuer:        "Dr. Ahmed Khan",
				IssuedBy:      "Database Systems Course",
				IssuedByEmail: DemoLecturerEmail,
			},
			Outcome: skill.StatusApproved,
		},
		{
			Request: ucskill.RequestInput{
				SkillName:     "Team Leadership",
				Category:      "Soft Skills",
				Description:   "Led a team of 8 students in organizing tech workshops and hackathons",
				Issuer:        "Student Tech Club",
				IssuedBy:      "Dr. Ahmed Khan",
				IssuedByEmail: DemoLecturerEmail,
			},
			Outcome: skill.StatusRejected,
		},
		{
			Request: ucskill.RequestInput{
				SkillName:     "Machine Learning Basics",
				Category:      "Technical",
				Description:   "Completed introductory ML projects with supervised and unsupervised learning",
				Evidence:      "https://github.com/sara-demo/ml-basics",
				Issuer:        "Dr. Ahmed Khan",
				IssuedBy:      "AI Research Lab",
				IssuedByEmail: DemoLecturerEmail,
			},
			Outcome: skill.StatusPending,
		},
	}
}

// UsersSeeder registers accounts, skipping any whose email is taken.
type UsersSeeder struct {
	Users []ucauth.RegisterInput
}

func (UsersSeeder) Name() string { return "users" }

func (s UsersSeeder) Run(ctx context.Context, deps Deps) error {
	for _, in := range s.Users {
		_, _, err := deps.Auth.Register(ctx, in)
		if err != nil && !errors.Is(err, ucauth.ErrDuplicateEmail) {
			return err
		}
	}
	return nil
}

// SkillsSeeder files skill requests as the demo student and settles them as
// the demo lecturer. It does nothing when the student already has skills.
type SkillsSeeder struct {
	Skills []DemoSkill
}

func (SkillsSeeder) Name() string { return "skills" }

func (s SkillsSeeder) Run(ctx context.Context, deps Deps) error {
	student, err := deps.Users.GetUserByEmail(ctx, DemoStudentEmail)
	if err != nil {
		return err
	}
	lecturer, err := deps.Users.GetUserByEmail(ctx, DemoLecturerEmail)
	if err != nil {
		return err
	}

	existing, err := deps.Skills.ListOwnSkills(ctx, student)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, it := range s.Skills {
		created, err := deps.Skills.RequestSkill(ctx, student, it.Request)
		if err != nil {
			return err
		}

		switch it.Outcome {
		case skill.StatusApproved:
			_, err = deps.Skills.ApproveSkill(ctx, lecturer, created.ID.String())
		case skill.StatusRejected:
			_, err = deps.Skills.RejectSkill(ctx, lecturer, created.ID.String(), "Please attach evidence from the club")
		}
		if err != nil {
			return err
		}
	}
	return nil
}
