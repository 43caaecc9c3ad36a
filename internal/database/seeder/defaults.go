package seeder

func Defaults() []Seeder {
	return []Seeder{
		UsersSeeder{Users: DemoUsers()},
		SkillsSeeder{Skills: DemoSkills()},
	}
}
