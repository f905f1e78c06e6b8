package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateLenderID = errors.New("duplicate lender id")
	ErrInvalidChannel    = errors.New("invalid lender channel")
)

type ChannelType string

const (
	ChannelLink  ChannelType = "link"
	ChannelEmail ChannelType = "email"
	ChannelAPI   ChannelType = "api"
)

// Channel describes how a lead reaches the lender. Only the fields of the
// selected Type are meaningful.
type Channel struct {
	Type       ChannelType `json:"type"`
	URL        string      `json:"url,omitempty"`
	Email      string      `json:"email,omitempty"`
	Endpoint   string      `json:"endpoint,omitempty"`
	Credential string      `json:"-"`
	Webhook    string      `json:"webhook,omitempty"`
}

func (c Channel) Validate() error {
	switch c.Type {
	case ChannelLink:
		if strings.TrimSpace(c.URL) == "" {
			return fmt.Errorf("%w: link channel requires url", ErrInvalidChannel)
		}
	case ChannelEmail:
		if strings.TrimSpace(c.Email) == "" {
			return fmt.Errorf("%w: email channel requires email", ErrInvalidChannel)
		}
	case ChannelAPI:
		if strings.TrimSpace(c.Endpoint) == "" {
			return fmt.Errorf("%w: api channel requires endpoint", ErrInvalidChannel)
		}
		if strings.TrimSpace(c.Credential) == "" {
			return fmt.Errorf("%w: api channel requires credential", ErrInvalidChannel)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidChannel, c.Type)
	}
	return nil
}

// LenderCriteria holds optional eligibility bounds. A nil pointer or empty
// slice leaves that dimension unrestricted.
type LenderCriteria struct {
	MinLoanAmount  *float64 `json:"minLoanAmount,omitempty"`
	MaxLoanAmount  *float64 `json:"maxLoanAmount,omitempty"`
	PropertyTypes  []string `json:"propertyTypes,omitempty"`
	States         []string `json:"states,omitempty"`
	CreditScoreMin *int     `json:"creditScoreMin,omitempty"`
}

type LenderProfile struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Active   bool            `json:"active"`
	Channel  Channel         `json:"channel"`
	Priority int             `json:"priority"`
	Criteria *LenderCriteria `json:"criteria,omitempty"`
}

// LenderRegistry is the ordered, read-only list of funding partners loaded at
// startup. Order matters: it breaks priority ties.
type LenderRegistry struct {
	profiles []LenderProfile
	index    map[string]int
}

func NewLenderRegistry(profiles []LenderProfile) (*LenderRegistry, error) {
	r := &LenderRegistry{
		profiles: make([]LenderProfile, 0, len(profiles)),
		index:    make(map[string]int, len(profiles)),
	}
	for _, p := range profiles {
		if strings.TrimSpace(p.ID) == "" {
			return nil, errors.New("lender id is required")
		}
		if _, exists := r.index[p.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLenderID, p.ID)
		}
		if err := p.Channel.Validate(); err != nil {
			return nil, fmt.Errorf("lender %s: %w", p.ID, err)
		}
		r.index[p.ID] = len(r.profiles)
		r.profiles = append(r.profiles, p)
	}
	return r, nil
}

// All returns a copy of the profiles in registry order.
func (r *LenderRegistry) All() []LenderProfile {
	out := make([]LenderProfile, len(r.profiles))
	copy(out, r.profiles)
	return out
}

func (r *LenderRegistry) Len() int {
	return len(r.profiles)
}

func (r *LenderRegistry) ByID(id string) (*LenderProfile, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	p := r.profiles[i]
	return &p, true
}
