package util

import (
	"fmt"
	"strconv"
	"strings"
)

type Semver struct {
	Major      int
	Minor      int
	Patch      int
	Beta       bool
	Alpha      bool
	Prerelease int
}

// Parse reads MAJOR.MINOR.PATCH with an optional -alpha.N or -beta.N suffix.
// A leading v and missing minor or patch parts are accepted.
func Parse(semver string) (Semver, error) {
	s := Semver{}
	version, pre, hasPre := strings.Cut(strings.TrimPrefix(semver, "v"), "-")

	parts := strings.Split(version, ".")
	if len(parts) > 3 {
		return Semver{}, fmt.Errorf("invalid version: %s", semver)
	}
	nums := [3]*int{&s.Major, &s.Minor, &s.Patch}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Semver{}, fmt.Errorf("invalid version: %s", semver)
		}
		*nums[i] = n
	}

	if hasPre {
		kind, num, _ := strings.Cut(pre, ".")
		switch kind {
		case "beta":
			s.Beta = true
		case "alpha":
			s.Alpha = true
		default:
			return Semver{}, fmt.Errorf("invalid prerelease type: %s", pre)
		}
		if num != "" {
			n, err := strconv.Atoi(num)
			if err != nil {
				return Semver{}, fmt.Errorf("invalid prerelease number: %s", pre)
			}
			s.Prerelease = n
		}
	}

	return s, nil
}

func (s Semver) String() string {
	str := strconv.Itoa(s.Major) + "." + strconv.Itoa(s.Minor) + "." + strconv.Itoa(s.Patch)
	if s.Beta {
		str += "-beta." + strconv.Itoa(s.Prerelease)
	} else if s.Alpha {
		str += "-alpha." + strconv.Itoa(s.Prerelease)
	}
	return str
}

// stage orders releases after betas after alphas.
func (s Semver) stage() int {
	switch {
	case s.Alpha:
		return 0
	case s.Beta:
		return 1
	}
	return 2
}

// Compare returns -1, 0 or 1 as s is older than, equal to or newer than o.
func (s Semver) Compare(o Semver) int {
	pairs := [][2]int{
		{s.Major, o.Major},
		{s.Minor, o.Minor},
		{s.Patch, o.Patch},
		{s.stage(), o.stage()},
		{s.Prerelease, o.Prerelease},
	}
	for _, p := range pairs {
		switch {
		case p[0] < p[1]:
			return -1
		case p[0] > p[1]:
			return 1
		}
	}
	return 0
}

// Satisfies checks s against a constraint: an exact version, or one prefixed
// by ^ (same major), ~ (same minor), >, >=, < or <=.
func (s Semver) Satisfies(cmp string) (bool, error) {
	op := ""
	for _, prefix := range []string{">=", "<=", "^", "~", ">", "<", "="} {
		if strings.HasPrefix(cmp, prefix) {
			op = prefix
			cmp = strings.TrimSpace(cmp[len(prefix):])
			break
		}
	}

	c, err := Parse(cmp)
	if err != nil {
		return false, err
	}

	d := s.Compare(c)
	switch op {
	case "^":
		return s.Major == c.Major && d >= 0, nil
	case "~":
		return s.Major == c.Major && s.Minor == c.Minor && d >= 0, nil
	case ">":
		return d > 0, nil
	case ">=":
		return d >= 0, nil
	case "<":
		return d < 0, nil
	case "<=":
		return d <= 0, nil
	}
	return d == 0, nil
}
