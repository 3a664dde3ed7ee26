package valueobjects

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"sync"
)

// IdentifierLength is the length of the canonical account identifier.
const IdentifierLength = 9

// DefaultSerialSeed makes serial sequences reproducible between runs.
const DefaultSerialSeed int64 = 9999

// ErrMalformedIdentifier is returned when text cannot be read as an identifier.
var ErrMalformedIdentifier = errors.New("malformed account identifier")

// SerialSource produces 4-digit serials in [1000, 9999].
type SerialSource interface {
	NextSerial() string
}

// SerialGenerator is a seeded SerialSource. The same seed always yields the
// same sequence, so collisions are possible and are not detected.
// Safe for concurrent use.
type SerialGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSerialGenerator creates a generator with the given seed.
func NewSerialGenerator(seed int64) *SerialGenerator {
	return &SerialGenerator{rnd: rand.New(rand.NewSource(seed))}
}

// NextSerial returns the next serial of the sequence.
func (g *SerialGenerator) NextSerial() string {
	g.mu.Lock()
	n := g.rnd.Intn(9000) + 1000
	g.mu.Unlock()
	return strconv.Itoa(n)
}

// Identifier is the account number: 3-digit branch code, 2-digit type code
// and 4-digit serial, e.g. "100011234".
//
// The type component changes only through OverrideType (money market downgrade).
type Identifier struct {
	branch      Branch
	accountType AccountType
	serial      string
}

// NewIdentifier creates an identifier with a fresh serial from src.
func NewIdentifier(branch Branch, accountType AccountType, src SerialSource) Identifier {
	return Identifier{branch: branch, accountType: accountType, serial: src.NextSerial()}
}

// ParseIdentifier reads the canonical 9-character form. The serial is kept
// exactly as written; no serial is drawn from any generator.
func ParseIdentifier(s string) (Identifier, error) {
	if len(s) != IdentifierLength || strings.IndexFunc(s, notDigit) >= 0 {
		return Identifier{}, ErrMalformedIdentifier
	}
	branch, err := BranchByCode(s[0:3])
	if err != nil {
		return Identifier{}, ErrMalformedIdentifier
	}
	accountType, err := AccountTypeByCode(s[3:5])
	if err != nil {
		return Identifier{}, ErrMalformedIdentifier
	}
	return Identifier{branch: branch, accountType: accountType, serial: s[5:]}, nil
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}

func (id Identifier) Branch() Branch { return id.branch }
func (id Identifier) AccountType() AccountType { return id.accountType }
func (id Identifier) Serial() string { return id.serial }

// IsZero checks if the identifier was never initialized.
func (id Identifier) IsZero() bool {
	return id.serial == ""
}

// String returns the canonical 9-character form.
func (id Identifier) String() string {
	return id.branch.Code() + id.accountType.Code() + id.serial
}

// Equals compares canonical forms.
func (id Identifier) Equals(other Identifier) bool {
	return id.String() == other.String()
}

// Compare orders identifiers lexicographically by canonical form.
func (id Identifier) Compare(other Identifier) int {
	return strings.Compare(id.String(), other.String())
}

// OverrideType replaces the type component. Branch and serial stay the same,
// so the canonical form, equality and ordering change after this call.
func (id *Identifier) OverrideType(t AccountType) {
	id.accountType = t
}
