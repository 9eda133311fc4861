// Package agent answers chat messages from the point of view of an owner,
// an operator or a client, using keyword-tagged intents evaluated against a
// CRM snapshot.
package agent

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/textnorm"
)

// Reserved intent names reported in Reply.Intent.
const (
	IntentClarification = "clarification"
	IntentGreeting      = "greeting"
	IntentFallback      = "fallback"
)

// MinMessageRunes is the shortest message the matcher will try to answer.
const MinMessageRunes = 3

const clarificationReply = "Could you elaborate? I did not quite understand the question."

var greetingPrefixes = []string{"oi", "olá", "ola", "hey", "hello", "bom dia", "boa tarde", "boa noite"}

// ChatContext carries per-caller data into response generators.
type ChatContext struct {
	// ClientID scopes client-role answers to the caller's own records.
	ClientID string
	// Now is the reference time for deadline checks. Zero means time.Now.
	Now time.Time
}

func (c ChatContext) now() time.Time {
	if c.Now.IsZero() {
		return time.Now()
	}
	return c.Now
}

// Generator builds a response from a snapshot. Generators must not mutate
// the snapshot.
type Generator func(snap *domain.Snapshot, cctx ChatContext) string

// Intent is one keyword-tagged response.
type Intent struct {
	Name     string
	Keywords []string
	Respond  Generator
}

// Playbook is the ordered intent table of a role.
type Playbook struct {
	Role      domain.Role
	Greetings []string
	Intents   []Intent
	Fallback  Generator
}

// Reply is the matcher's answer along with the intent that produced it.
type Reply struct {
	Text   string      `json:"text"`
	Intent string      `json:"intent"`
	Role   domain.Role `json:"role"`
}

// Matcher resolves messages to intents. It holds only read-only tables and
// is safe for concurrent use.
type Matcher struct {
	playbooks map[domain.Role]Playbook
}

// NewMatcher builds a matcher over the given playbooks. Keywords are
// normalized once here.
func NewMatcher(playbooks ...Playbook) *Matcher {
	m := &Matcher{playbooks: make(map[domain.Role]Playbook, len(playbooks))}
	for _, pb := range playbooks {
		intents := make([]Intent, len(pb.Intents))
		for i, in := range pb.Intents {
			kws := make([]string, len(in.Keywords))
			for j, kw := range in.Keywords {
				kws[j] = Normalize(kw)
			}
			in.Keywords = kws
			intents[i] = in
		}
		pb.Intents = intents
		m.playbooks[pb.Role] = pb
	}
	return m
}

// DefaultMatcher returns a matcher loaded with the built-in playbooks.
func DefaultMatcher() *Matcher {
	return NewMatcher(ownerPlaybook(), operatorPlaybook(), clientPlaybook())
}

// Normalize lower-cases s and strips diacritics.
func Normalize(s string) string {
	return textnorm.Fold(s)
}

// Playbook returns the table for role. Unknown roles get the operator table.
func (m *Matcher) Playbook(role domain.Role) Playbook {
	if pb, ok := m.playbooks[role]; ok {
		return pb
	}
	return m.playbooks[domain.RoleOperator]
}

// Match returns the first intent of role whose keywords occur in message.
func (m *Matcher) Match(message string, role domain.Role) (Intent, bool) {
	msg := Normalize(message)
	for _, in := range m.Playbook(role).Intents {
		for _, kw := range in.Keywords {
			if strings.Contains(msg, kw) {
				return in, true
			}
		}
	}
	return Intent{}, false
}

// Respond runs one turn: the short-message guard, the greeting check, then
// intent matching with the role fallback.
func (m *Matcher) Respond(message string, role domain.Role, snap *domain.Snapshot, cctx ChatContext) Reply {
	pb := m.Playbook(role)
	reply := Reply{Role: pb.Role}

	trimmed := strings.TrimSpace(message)
	if utf8.RuneCountInString(trimmed) < MinMessageRunes {
		reply.Intent, reply.Text = IntentClarification, clarificationReply
		return reply
	}
	if IsGreeting(trimmed) && len(pb.Greetings) > 0 {
		reply.Intent, reply.Text = IntentGreeting, pb.Greetings[0]
		return reply
	}
	if in, ok := m.Match(trimmed, pb.Role); ok {
		reply.Intent, reply.Text = in.Name, in.Respond(snap, cctx)
		return reply
	}
	reply.Intent, reply.Text = IntentFallback, pb.Fallback(snap, cctx)
	return reply
}

// IsGreeting reports whether the lower-cased message opens with a greeting.
func IsGreeting(message string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, p := range greetingPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
