// Package entity lists the people, organizations and locations mentioned in
// a document set.
package entity

import "strings"

// Kind is the coarse class of a recognized entity.
type Kind int

const (
	Other Kind = iota
	Person
	Organization
	Location
)

func (k Kind) String() string {
	switch k {
	case Person:
		return "person"
	case Organization:
		return "organization"
	case Location:
		return "location"
	default:
		return "other"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// tagKinds maps recognizer chunk labels to kinds. Labels not listed are Other.
var tagKinds = map[string]Kind{
	"PERSON":       Person,
	"ORGANIZATION": Organization,
	"GPE":          Location,
	"LOCATION":     Location,
	"FACILITY":     Location,
}

// KindOf maps a recognizer label such as "GPE" to its Kind.
func KindOf(tag string) Kind {
	return tagKinds[strings.ToUpper(strings.TrimSpace(tag))]
}

// Chunk is one tagged span produced by a Recognizer.
type Chunk struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

// Kind returns the chunk's class.
func (c Chunk) Kind() Kind { return KindOf(c.Tag) }

// Recognizer finds named-entity chunks in tokenized sentences.
type Recognizer interface {
	Recognize(sentences [][]string) ([]Chunk, error)
}

// Listing holds distinct entity names per kind in first-seen order.
type Listing struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
}

// BuildListing groups chunks by kind. Other chunks are not listed and
// repeated names are kept once.
func BuildListing(chunks []Chunk) Listing {
	var l Listing
	seen := make(map[Kind]map[string]struct{})
	for _, c := range chunks {
		k := c.Kind()
		name := strings.TrimSpace(c.Text)
		if k == Other || name == "" {
			continue
		}
		if seen[k] == nil {
			seen[k] = make(map[string]struct{})
		}
		if _, dup := seen[k][name]; dup {
			continue
		}
		seen[k][name] = struct{}{}
		switch k {
		case Person:
			l.People = append(l.People, name)
		case Organization:
			l.Organizations = append(l.Organizations, name)
		case Location:
			l.Locations = append(l.Locations, name)
		}
	}
	return l
}

// Empty reports whether nothing was listed.
func (l Listing) Empty() bool {
	return len(l.People) == 0 && len(l.Organizations) == 0 && len(l.Locations) == 0
}
