package valueobjects

import "strings"

// Profile identifies an account holder. Names compare without regard to case,
// so "john DOE" and "John Doe" born on the same day are the same holder.
type Profile struct {
	firstName   string
	lastName    string
	dateOfBirth Date
}

// NewProfile creates a holder profile. Names are kept as written for display.
func NewProfile(firstName, lastName string, dob Date) Profile {
	return Profile{firstName: firstName, lastName: lastName, dateOfBirth: dob}
}

func (p Profile) FirstName() string { return p.firstName }
func (p Profile) LastName() string { return p.lastName }
func (p Profile) DateOfBirth() Date { return p.dateOfBirth }

// Equals compares names case-insensitively and the date of birth exactly.
func (p Profile) Equals(other Profile) bool {
	return strings.EqualFold(p.firstName, other.firstName) &&
		strings.EqualFold(p.lastName, other.lastName) &&
		p.dateOfBirth.Equals(other.dateOfBirth)
}

// Compare orders by last name, then first name, then date of birth.
func (p Profile) Compare(other Profile) int {
	if c := strings.Compare(strings.ToLower(p.lastName), strings.ToLower(other.lastName)); c != 0 {
		return c
	}
	if c := strings.Compare(strings.ToLower(p.firstName), strings.ToLower(other.firstName)); c != 0 {
		return c
	}
	return p.dateOfBirth.Compare(other.dateOfBirth)
}

// String returns "First Last m/d/yyyy".
func (p Profile) String() string {
	return p.firstName + " " + p.lastName + " " + p.dateOfBirth.String()
}
