package content

import (
	"fmt"
	"strings"
)

// Difficulty is the audience level a lesson is written for.
type Difficulty string

const (
	Elementary   Difficulty = "elementary school"
	HighSchool   Difficulty = "high school"
	College      Difficulty = "college"
	PostGraduate Difficulty = "post-graduate"
)

// Difficulties lists every level from easiest to hardest.
var Difficulties = []Difficulty{Elementary, HighSchool, College, PostGraduate}

// ParseDifficulty accepts the canonical names plus a few short aliases.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "elementary school", "elementary":
		return Elementary, nil
	case "high school", "highschool", "high-school", "":
		return HighSchool, nil
	case "college", "university":
		return College, nil
	case "post-graduate", "postgraduate", "graduate":
		return PostGraduate, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// UsesSearch reports whether lessons at this level are grounded with web
// search.
func (d Difficulty) UsesSearch() bool {
	return d == HighSchool || d == College || d == PostGraduate
}

func (d Difficulty) String() string { return string(d) }
